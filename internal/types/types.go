package types

import "time"

// ResumeDocument is an uploaded resume payload with its declared media type.
// It lives for exactly one analysis run and is never persisted.
type ResumeDocument struct {
	Data      []byte
	MediaType string
	FileName  string
}

// SkillsAnalysis is the fixed-shape result of the skills section analyzer.
type SkillsAnalysis struct {
	Skills          []string `json:"skills"`
	SkillsRelevance float64  `json:"skillsRelevance"`
	MarketDemand    float64  `json:"marketDemand"`
	Analysis        string   `json:"analysis"`
}

// ExperienceAnalysis is the fixed-shape result of the experience analyzer.
type ExperienceAnalysis struct {
	Companies         []string `json:"companies"`
	Positions         []string `json:"positions"`
	TotalExperience   string   `json:"totalExperience"`
	ExperienceQuality float64  `json:"experienceQuality"`
	Analysis          string   `json:"analysis"`
}

// ProjectsAnalysis is the fixed-shape result of the projects analyzer.
type ProjectsAnalysis struct {
	Projects       []string `json:"projects"`
	Technologies   []string `json:"technologies"`
	ProjectQuality float64  `json:"projectQuality"`
	Innovation     float64  `json:"innovation"`
	Analysis       string   `json:"analysis"`
}

// EducationAnalysis is the fixed-shape result of the education analyzer.
type EducationAnalysis struct {
	Degree           string  `json:"degree"`
	Institution      string  `json:"institution"`
	GraduationYear   string  `json:"graduationYear"`
	GPA              string  `json:"gpa"`
	EducationQuality float64 `json:"educationQuality"`
	Analysis         string  `json:"analysis"`
}

// FormattingAnalysis is the fixed-shape result of the formatting analyzer.
type FormattingAnalysis struct {
	ATSCompliance float64 `json:"atsCompliance"`
	Readability   float64 `json:"readability"`
	Organization  float64 `json:"organization"`
	Formatting    float64 `json:"formatting"`
	Analysis      string  `json:"analysis"`
}

// LinkStatus records the probe outcome for a single extracted URL.
type LinkStatus struct {
	Link   string `json:"link"`
	Status string `json:"status"`
	Valid  bool   `json:"valid"`
}

// LinkValidation aggregates link probe results. ValidLinks never exceeds
// TotalLinks; duplicate links are probed and counted individually.
type LinkValidation struct {
	TotalLinks     int          `json:"totalLinks"`
	ValidLinks     int          `json:"validLinks"`
	LinkValidation []LinkStatus `json:"linkValidation"`
}

// CompanyRating is one employer's reputation rating on a 1-10 scale.
type CompanyRating struct {
	Company  string  `json:"company"`
	Rating   float64 `json:"rating"`
	Analysis string  `json:"analysis"`
}

// CompanyVerification holds per-company reputation ratings and their
// arithmetic mean. An empty company list yields the neutral average without
// any upstream call.
type CompanyVerification struct {
	CompanyRatings       []CompanyRating `json:"companyRatings"`
	AverageCompanyRating float64         `json:"averageCompanyRating"`
}

// AnalysisBundle aggregates every section analysis plus link and company
// verification results. Immutable once assembled; sole input to the score
// aggregator.
type AnalysisBundle struct {
	SkillsAnalysis      SkillsAnalysis      `json:"skillsAnalysis"`
	ExperienceAnalysis  ExperienceAnalysis  `json:"experienceAnalysis"`
	ProjectsAnalysis    ProjectsAnalysis    `json:"projectsAnalysis"`
	EducationAnalysis   EducationAnalysis   `json:"educationAnalysis"`
	FormattingAnalysis  FormattingAnalysis  `json:"formattingAnalysis"`
	LinkValidation      LinkValidation      `json:"linkValidation"`
	CompanyVerification CompanyVerification `json:"companyVerification"`
}

// Recommendation is one prioritized improvement suggestion.
type Recommendation struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"` // "high", "medium", or "low"
}

// AnalysisReport is the terminal output of one ATS analysis run.
type AnalysisReport struct {
	ATSScore        int              `json:"atsScore"`
	AnalysisResults AnalysisBundle   `json:"analysisResults"`
	Recommendations []Recommendation `json:"recommendations"`
}

// JobSearchInput is the caller-supplied search criteria. All fields required.
type JobSearchInput struct {
	JobTitle string `json:"jobTitle"`
	WorkMode string `json:"workMode"`
	Location string `json:"location"`
}

// RefinedQuery is the model-optimized form of a raw job search.
type RefinedQuery struct {
	OptimizedJobTitle    string   `json:"optimizedJobTitle"`
	AlternativeJobTitles []string `json:"alternativeJobTitles"`
	WorkMode             string   `json:"workMode"`
	City                 string   `json:"city"`
	Country              string   `json:"country"`
	SearchKeywords       []string `json:"searchKeywords"`
}

// JobPosting is a provider-agnostic job listing. Provider-specific response
// shapes are normalized into this one struct.
type JobPosting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Salary         string    `json:"salary"`
	WorkMode       string    `json:"workMode"`
	URL            string    `json:"url"`
	PostedDate     time.Time `json:"postedDate"`
	RelevanceScore int       `json:"relevanceScore"`
	IsRemote       bool      `json:"isRemote"`
	Logo           string    `json:"logo,omitempty"`
}

// JobSearchOutput is the response envelope for a job search.
type JobSearchOutput struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message,omitempty"`
	Jobs           []JobPosting   `json:"jobs"`
	SearchCriteria JobSearchInput `json:"searchCriteria"`
	TotalResults   int            `json:"totalResults"`
}

// ChatMessage is one turn of a career-advice conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatInput is a stateless chat request: the current message plus whatever
// history the caller wants in context.
type ChatInput struct {
	Message  string        `json:"message"`
	History  []ChatMessage `json:"history,omitempty"`
	Document string        `json:"document,omitempty"`
}
