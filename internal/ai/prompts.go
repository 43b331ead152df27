package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	SectionAnalysis     string
	CompanyVerification string
	Recommendations     string
	QueryRefinement     string
	JobRanking          string
	CareerChat          string
	ResumeOCR           string
}

// UserPrompts contains user-level prompt templates with placeholders for
// dynamic content
type UserPrompts struct {
	SkillsAnalysis      string
	ExperienceAnalysis  string
	ProjectsAnalysis    string
	EducationAnalysis   string
	FormattingAnalysis  string
	CompanyVerification string
	Recommendations     string
	QueryRefinement     string
	JobRanking          string
	ResumeOCR           string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	SectionAnalysis: `You are an expert ATS (Applicant Tracking System) analyst and resume reviewer. Your core principles are:

- Base every rating strictly on the text you are given
- All numeric ratings use a 1-10 scale
- Respond with the requested JSON object only, no prose around it
- Keep the "analysis" field factual and specific to this resume`,

	CompanyVerification: `You are an expert on employer reputation and market standing. You rate companies on a 1-10 scale based on industry standing, size, and recognition. Respond with the requested JSON object only.`,

	Recommendations: `You are an expert career coach specializing in resume improvement. You turn ATS analysis data into concrete, actionable suggestions a candidate can apply directly. Respond with the requested JSON object only.`,

	QueryRefinement: `You are an expert job search analyst. You turn raw search criteria into optimized, structured search parameters with relevant keywords and synonyms. Respond with the requested JSON object only.`,

	JobRanking: `You are an expert job matching specialist. You score job listings for relevance against a candidate's search criteria on a 0-100 scale. Respond with the requested JSON object only.`,

	CareerChat: `You are HireBot, an AI career counseling assistant. You are motivating, emotionally intelligent, and very helpful. You help users with career advice, resume feedback, cold email drafting, and general career guidance.`,

	ResumeOCR: `You are a precise document transcription assistant. You extract the full text content of resume images exactly as written, preserving section order. Output the extracted text only, with no commentary.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	SkillsAnalysis: `Analyze the skills section from this resume text and extract all technical and soft skills mentioned.
Rate the relevance and market demand of these skills on a scale of 1-10.

Resume Text: %s

Provide response in JSON format:
{
  "skills": ["skill1", "skill2", ...],
  "skillsRelevance": number,
  "marketDemand": number,
  "analysis": "detailed analysis"
}`,

	ExperienceAnalysis: `Analyze the work experience section from this resume text.
Extract company names, job titles, duration, and responsibilities.
Assess the quality and relevance of the experience on a scale of 1-10.

Resume Text: %s

Provide response in JSON format:
{
  "companies": ["company1", "company2", ...],
  "positions": ["position1", "position2", ...],
  "totalExperience": "X years",
  "experienceQuality": number,
  "analysis": "detailed analysis"
}`,

	ProjectsAnalysis: `Analyze the projects section from this resume text.
Extract project names, technologies used, and descriptions.
Assess the complexity and relevance of projects on a scale of 1-10.

Resume Text: %s

Provide response in JSON format:
{
  "projects": ["project1", "project2", ...],
  "technologies": ["tech1", "tech2", ...],
  "projectQuality": number,
  "innovation": number,
  "analysis": "detailed analysis"
}`,

	EducationAnalysis: `Analyze the education section from this resume text.
Extract degree, institution, graduation year, and GPA if mentioned.
Assess the quality of educational background on a scale of 1-10.

Resume Text: %s

Provide response in JSON format:
{
  "degree": "degree name",
  "institution": "institution name",
  "graduationYear": "year",
  "gpa": "gpa if mentioned",
  "educationQuality": number,
  "analysis": "detailed analysis"
}`,

	FormattingAnalysis: `Analyze the formatting and structure of this resume text.
Check for ATS-friendly formatting, readability, and organization.
Rate each aspect on a scale of 1-10.

Resume Text: %s

Provide response in JSON format:
{
  "atsCompliance": number,
  "readability": number,
  "organization": number,
  "formatting": number,
  "analysis": "detailed analysis"
}`,

	CompanyVerification: `Research and verify the reputation and market standing of these companies: %s.
Rate each company's reputation on a scale of 1-10 based on their industry standing, size, and recognition.

Provide response in JSON format:
{
  "companyRatings": [
    {"company": "name", "rating": number, "analysis": "brief analysis"}
  ]
}`,

	Recommendations: `Based on this ATS analysis with score %d/100, provide specific recommendations for improvement:

Analysis: %s

Provide 5-7 actionable recommendations in JSON format:
{
  "recommendations": [
    {"category": "category", "suggestion": "specific suggestion", "priority": "high/medium/low"}
  ]
}`,

	QueryRefinement: `Process the following job search criteria and provide structured, optimized search parameters.

Job Title: %s
Work Mode: %s
Location: %s

Tasks:
1. Analyze and refine the job title to include relevant keywords and synonyms
2. Validate and format the work mode preference
3. Extract city and country from location
4. Suggest additional relevant job titles based on the input

IMPORTANT: Return ONLY a valid JSON object without any markdown formatting or code blocks.

{
  "optimizedJobTitle": "primary job title",
  "alternativeJobTitles": ["alternative1", "alternative2"],
  "workMode": "formatted work mode",
  "city": "city name",
  "country": "country name",
  "searchKeywords": ["keyword1", "keyword2", "keyword3"]
}`,

	JobRanking: `Analyze the following job listings and score them for the user's search criteria.

User Requirements:
- Job Title: %s
- Work Mode: %s
- Location: %s

Job Listings:
%s

Tasks:
1. Score each job based on relevance to user requirements (0-100)
2. Rank jobs by relevance score

IMPORTANT: Return ONLY a valid JSON object without any markdown formatting or code blocks.

{
  "rankedJobs": [
    {"id": "job_id", "relevanceScore": 85}
  ]
}`,

	ResumeOCR: `Extract the complete text content of this resume image.
Transcribe every section exactly as written, top to bottom.
Output the extracted text only.`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
