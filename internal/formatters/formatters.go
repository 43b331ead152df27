package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisReport", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisReport", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "JobSearchOutput", &JobSearchTextFormatter{})
	registry.RegisterFormatter("markdown", "JobSearchOutput", &JobSearchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisReport, *types.AnalysisReport:
		return "AnalysisReport"
	case types.JobSearchOutput, *types.JobSearchOutput:
		return "JobSearchOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func analysisReportValue(data any) (types.AnalysisReport, bool) {
	switch v := data.(type) {
	case types.AnalysisReport:
		return v, true
	case *types.AnalysisReport:
		if v != nil {
			return *v, true
		}
	}
	return types.AnalysisReport{}, false
}

func jobSearchValue(data any) (types.JobSearchOutput, bool) {
	switch v := data.(type) {
	case types.JobSearchOutput:
		return v, true
	case *types.JobSearchOutput:
		if v != nil {
			return *v, true
		}
	}
	return types.JobSearchOutput{}, false
}

// AnalysisTextFormatter handles text formatting for ATS analysis reports
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := analysisReportValue(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	bundle := result.AnalysisResults
	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("ATS Score: %d/100\n\n", result.ATSScore))

	output.WriteString("=== SKILLS ===\n")
	output.WriteString(fmt.Sprintf("Relevance: %.1f/10  Market Demand: %.1f/10\n", bundle.SkillsAnalysis.SkillsRelevance, bundle.SkillsAnalysis.MarketDemand))
	if len(bundle.SkillsAnalysis.Skills) > 0 {
		output.WriteString("Skills: ")
		output.WriteString(strings.Join(bundle.SkillsAnalysis.Skills, ", "))
		output.WriteString("\n")
	}
	output.WriteString(bundle.SkillsAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("=== EXPERIENCE ===\n")
	output.WriteString(fmt.Sprintf("Quality: %.1f/10  Total: %s\n", bundle.ExperienceAnalysis.ExperienceQuality, bundle.ExperienceAnalysis.TotalExperience))
	if len(bundle.ExperienceAnalysis.Companies) > 0 {
		output.WriteString("Companies: ")
		output.WriteString(strings.Join(bundle.ExperienceAnalysis.Companies, ", "))
		output.WriteString("\n")
	}
	output.WriteString(bundle.ExperienceAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("=== PROJECTS ===\n")
	output.WriteString(fmt.Sprintf("Quality: %.1f/10  Innovation: %.1f/10\n", bundle.ProjectsAnalysis.ProjectQuality, bundle.ProjectsAnalysis.Innovation))
	if len(bundle.ProjectsAnalysis.Technologies) > 0 {
		output.WriteString("Technologies: ")
		output.WriteString(strings.Join(bundle.ProjectsAnalysis.Technologies, ", "))
		output.WriteString("\n")
	}
	output.WriteString(bundle.ProjectsAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("=== EDUCATION ===\n")
	output.WriteString(fmt.Sprintf("Quality: %.1f/10\n", bundle.EducationAnalysis.EducationQuality))
	if bundle.EducationAnalysis.Degree != "" {
		output.WriteString(fmt.Sprintf("%s, %s (%s)\n", bundle.EducationAnalysis.Degree, bundle.EducationAnalysis.Institution, bundle.EducationAnalysis.GraduationYear))
	}
	output.WriteString(bundle.EducationAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("=== FORMATTING ===\n")
	output.WriteString(fmt.Sprintf("ATS Compliance: %.1f/10  Readability: %.1f/10  Organization: %.1f/10  Formatting: %.1f/10\n",
		bundle.FormattingAnalysis.ATSCompliance, bundle.FormattingAnalysis.Readability,
		bundle.FormattingAnalysis.Organization, bundle.FormattingAnalysis.Formatting))
	output.WriteString(bundle.FormattingAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("=== LINKS ===\n")
	output.WriteString(fmt.Sprintf("Valid: %d/%d\n", bundle.LinkValidation.ValidLinks, bundle.LinkValidation.TotalLinks))
	for _, link := range bundle.LinkValidation.LinkValidation {
		marker := "BROKEN"
		if link.Valid {
			marker = "OK"
		}
		output.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", marker, link.Link, link.Status))
	}
	output.WriteString("\n")

	output.WriteString("=== COMPANIES ===\n")
	output.WriteString(fmt.Sprintf("Average Rating: %.1f/10\n", bundle.CompanyVerification.AverageCompanyRating))
	for _, rating := range bundle.CompanyVerification.CompanyRatings {
		output.WriteString(fmt.Sprintf("- %s: %.1f/10\n", rating.Company, rating.Rating))
	}
	output.WriteString("\n")

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. [%s/%s] %s\n", i+1, rec.Category, rec.Priority, rec.Suggestion))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisReport"
}

// AnalysisMarkdownFormatter handles markdown formatting for ATS analysis reports
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := analysisReportValue(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	bundle := result.AnalysisResults
	var output strings.Builder

	output.WriteString("# ATS Analysis Report\n\n")
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))

	output.WriteString("## Skills\n\n")
	output.WriteString(fmt.Sprintf("**Relevance:** %.1f/10 | **Market Demand:** %.1f/10\n\n", bundle.SkillsAnalysis.SkillsRelevance, bundle.SkillsAnalysis.MarketDemand))
	if len(bundle.SkillsAnalysis.Skills) > 0 {
		output.WriteString("**Skills:** ")
		output.WriteString(strings.Join(bundle.SkillsAnalysis.Skills, ", "))
		output.WriteString("\n\n")
	}
	output.WriteString(bundle.SkillsAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("## Experience\n\n")
	output.WriteString(fmt.Sprintf("**Quality:** %.1f/10 | **Total:** %s\n\n", bundle.ExperienceAnalysis.ExperienceQuality, bundle.ExperienceAnalysis.TotalExperience))
	if len(bundle.ExperienceAnalysis.Companies) > 0 {
		output.WriteString("**Companies:** ")
		output.WriteString(strings.Join(bundle.ExperienceAnalysis.Companies, ", "))
		output.WriteString("\n\n")
	}
	output.WriteString(bundle.ExperienceAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("## Projects\n\n")
	output.WriteString(fmt.Sprintf("**Quality:** %.1f/10 | **Innovation:** %.1f/10\n\n", bundle.ProjectsAnalysis.ProjectQuality, bundle.ProjectsAnalysis.Innovation))
	if len(bundle.ProjectsAnalysis.Technologies) > 0 {
		output.WriteString("**Technologies:** ")
		output.WriteString(strings.Join(bundle.ProjectsAnalysis.Technologies, ", "))
		output.WriteString("\n\n")
	}
	output.WriteString(bundle.ProjectsAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("## Education\n\n")
	output.WriteString(fmt.Sprintf("**Quality:** %.1f/10\n\n", bundle.EducationAnalysis.EducationQuality))
	if bundle.EducationAnalysis.Degree != "" {
		output.WriteString(fmt.Sprintf("%s, %s (%s)\n\n", bundle.EducationAnalysis.Degree, bundle.EducationAnalysis.Institution, bundle.EducationAnalysis.GraduationYear))
	}
	output.WriteString(bundle.EducationAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("## Formatting\n\n")
	output.WriteString(fmt.Sprintf("**ATS Compliance:** %.1f/10 | **Readability:** %.1f/10 | **Organization:** %.1f/10 | **Formatting:** %.1f/10\n\n",
		bundle.FormattingAnalysis.ATSCompliance, bundle.FormattingAnalysis.Readability,
		bundle.FormattingAnalysis.Organization, bundle.FormattingAnalysis.Formatting))
	output.WriteString(bundle.FormattingAnalysis.Analysis)
	output.WriteString("\n\n")

	output.WriteString("## Links\n\n")
	output.WriteString(fmt.Sprintf("**Valid:** %d/%d\n\n", bundle.LinkValidation.ValidLinks, bundle.LinkValidation.TotalLinks))
	for _, link := range bundle.LinkValidation.LinkValidation {
		marker := "broken"
		if link.Valid {
			marker = "ok"
		}
		output.WriteString(fmt.Sprintf("- `%s` %s (%s)\n", marker, link.Link, link.Status))
	}
	output.WriteString("\n")

	output.WriteString("## Companies\n\n")
	output.WriteString(fmt.Sprintf("**Average Rating:** %.1f/10\n\n", bundle.CompanyVerification.AverageCompanyRating))
	for _, rating := range bundle.CompanyVerification.CompanyRatings {
		output.WriteString(fmt.Sprintf("- **%s:** %.1f/10\n", rating.Company, rating.Rating))
	}
	output.WriteString("\n")

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. **%s** (%s priority): %s\n", i+1, rec.Category, rec.Priority, rec.Suggestion))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisReport"
}

// JobSearchTextFormatter handles text formatting for job search results
type JobSearchTextFormatter struct{}

func (jtf *JobSearchTextFormatter) Format(data any) (string, error) {
	result, ok := jobSearchValue(data)
	if !ok {
		return "", fmt.Errorf("expected JobSearchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB SEARCH RESULTS ===\n\n")
	output.WriteString(fmt.Sprintf("Query: %s (%s) in %s\n",
		result.SearchCriteria.JobTitle, result.SearchCriteria.WorkMode, result.SearchCriteria.Location))

	if !result.Success {
		output.WriteString("\n")
		output.WriteString(result.Message)
		output.WriteString("\n")
		return output.String(), nil
	}

	output.WriteString(fmt.Sprintf("Results: %d\n\n", result.TotalResults))

	for i, job := range result.Jobs {
		output.WriteString(fmt.Sprintf("%d. %s at %s\n", i+1, job.Title, job.Company))
		output.WriteString(fmt.Sprintf("   Location: %s", job.Location))
		if job.IsRemote {
			output.WriteString(" (remote)")
		}
		output.WriteString("\n")
		output.WriteString(fmt.Sprintf("   Salary: %s\n", job.Salary))
		output.WriteString(fmt.Sprintf("   Relevance: %d/100\n", job.RelevanceScore))
		output.WriteString(fmt.Sprintf("   Apply: %s\n\n", job.URL))
	}

	return output.String(), nil
}

func (jtf *JobSearchTextFormatter) SupportedType() string {
	return "JobSearchOutput"
}

// JobSearchMarkdownFormatter handles markdown formatting for job search results
type JobSearchMarkdownFormatter struct{}

func (jmf *JobSearchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := jobSearchValue(data)
	if !ok {
		return "", fmt.Errorf("expected JobSearchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Search Results\n\n")
	output.WriteString(fmt.Sprintf("**Query:** %s (%s) in %s\n\n",
		result.SearchCriteria.JobTitle, result.SearchCriteria.WorkMode, result.SearchCriteria.Location))

	if !result.Success {
		output.WriteString(result.Message)
		output.WriteString("\n")
		return output.String(), nil
	}

	output.WriteString(fmt.Sprintf("**Results:** %d\n\n", result.TotalResults))

	for i, job := range result.Jobs {
		output.WriteString(fmt.Sprintf("## %d. %s at %s\n\n", i+1, job.Title, job.Company))
		output.WriteString(fmt.Sprintf("- **Location:** %s\n", job.Location))
		if job.IsRemote {
			output.WriteString("- **Remote:** yes\n")
		}
		output.WriteString(fmt.Sprintf("- **Salary:** %s\n", job.Salary))
		output.WriteString(fmt.Sprintf("- **Relevance:** %d/100\n", job.RelevanceScore))
		output.WriteString(fmt.Sprintf("- **Apply:** %s\n\n", job.URL))
	}

	return output.String(), nil
}

func (jmf *JobSearchMarkdownFormatter) SupportedType() string {
	return "JobSearchOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
