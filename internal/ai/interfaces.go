package ai

import (
	"context"

	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// AIProvider is the contract every model backend implements.
// All methods return token usage information; callers can ignore it if not
// needed. Raw model text never escapes a provider: every JSON-producing
// method sanitizes and validates before returning.
type AIProvider interface {
	// Resume section analyzers. Each takes the full extracted resume text.
	AnalyzeSkills(ctx context.Context, resumeText string) (types.SkillsAnalysis, *TokenUsage, error)
	AnalyzeExperience(ctx context.Context, resumeText string) (types.ExperienceAnalysis, *TokenUsage, error)
	AnalyzeProjects(ctx context.Context, resumeText string) (types.ProjectsAnalysis, *TokenUsage, error)
	AnalyzeEducation(ctx context.Context, resumeText string) (types.EducationAnalysis, *TokenUsage, error)
	AnalyzeFormatting(ctx context.Context, resumeText string) (types.FormattingAnalysis, *TokenUsage, error)

	// VerifyCompanies rates employer reputations. Callers must not invoke it
	// with an empty list; that case is handled locally without a model call.
	VerifyCompanies(ctx context.Context, companies []string) ([]types.CompanyRating, *TokenUsage, error)

	// GenerateRecommendations turns a completed analysis into improvement
	// suggestions.
	GenerateRecommendations(ctx context.Context, bundle types.AnalysisBundle, atsScore int) ([]types.Recommendation, *TokenUsage, error)

	// Job search support.
	RefineQuery(ctx context.Context, input types.JobSearchInput) (types.RefinedQuery, *TokenUsage, error)
	RankJobs(ctx context.Context, input types.JobSearchInput, jobs []types.JobPosting) (map[string]int, *TokenUsage, error)

	// ExtractImageText transcribes a resume image via the model's vision path.
	ExtractImageText(ctx context.Context, mimeType string, data []byte) (string, *TokenUsage, error)

	// Chat produces a free-form career counseling reply.
	Chat(ctx context.Context, input types.ChatInput, historyLimit int) (string, *TokenUsage, error)

	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
