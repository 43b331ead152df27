package ats

import (
	"context"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// Analyzer is the slice of AI operations the pipeline consumes. The ai
// package's provider satisfies it; tests substitute fakes.
type Analyzer interface {
	AnalyzeSkills(ctx context.Context, resumeText string) (types.SkillsAnalysis, *ai.TokenUsage, error)
	AnalyzeExperience(ctx context.Context, resumeText string) (types.ExperienceAnalysis, *ai.TokenUsage, error)
	AnalyzeProjects(ctx context.Context, resumeText string) (types.ProjectsAnalysis, *ai.TokenUsage, error)
	AnalyzeEducation(ctx context.Context, resumeText string) (types.EducationAnalysis, *ai.TokenUsage, error)
	AnalyzeFormatting(ctx context.Context, resumeText string) (types.FormattingAnalysis, *ai.TokenUsage, error)
	VerifyCompanies(ctx context.Context, companies []string) ([]types.CompanyRating, *ai.TokenUsage, error)
	GenerateRecommendations(ctx context.Context, bundle types.AnalysisBundle, atsScore int) ([]types.Recommendation, *ai.TokenUsage, error)
}

// LinkProber validates the URLs found in resume text.
type LinkProber interface {
	Validate(ctx context.Context, resumeText string) types.LinkValidation
}

// Analysis step identifiers as they appear in progress events.
const (
	StepSkills          = "skills"
	StepExperience      = "experience"
	StepProjects        = "projects"
	StepEducation       = "education"
	StepFormatting      = "formatting"
	StepLinks           = "links"
	StepCompanies       = "companies"
	StepScore           = "score"
	StepRecommendations = "recommendations"
)

// Progress event statuses.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// ProgressEvent is one step-state transition during an analysis run. Events
// for a single run are strictly ordered: each step's processing event
// precedes its completed event, and steps run in pipeline order.
type ProgressEvent struct {
	Step   string `json:"step"`
	Status string `json:"status"`
}

// ProgressFunc receives progress events during a run. It is called from the
// pipeline goroutine; implementations must not block.
type ProgressFunc func(ProgressEvent)

// Pipeline runs a full resume analysis: five section analyzers in sequence,
// link probes, company verification, score aggregation, and recommendations.
// Section failures abort the run; only recommendation failures degrade.
type Pipeline struct {
	analyzer Analyzer
	links    LinkProber
	recMax   int
	logger   *apperrors.Logger

	totalTokens int64
}

// NewPipeline wires a pipeline from its collaborators. recMax caps the number
// of recommendations kept from the model; zero means no cap.
func NewPipeline(analyzer Analyzer, links LinkProber, recMax int, logger *apperrors.Logger) *Pipeline {
	return &Pipeline{
		analyzer: analyzer,
		links:    links,
		recMax:   recMax,
		logger:   logger,
	}
}

// Analyze runs the full pipeline over extracted resume text. Progress events
// fire before and after each step; progress may be nil. On error the partial
// bundle is discarded and the error describes the step that failed.
func (p *Pipeline) Analyze(ctx context.Context, resumeText string, progress ProgressFunc) (*types.AnalysisReport, error) {
	p.totalTokens = 0
	emit := func(step, status string) {
		if progress != nil {
			progress(ProgressEvent{Step: step, Status: status})
		}
	}

	var bundle types.AnalysisBundle
	var err error

	emit(StepSkills, StatusProcessing)
	bundle.SkillsAnalysis, err = p.runSkills(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	emit(StepSkills, StatusCompleted)

	emit(StepExperience, StatusProcessing)
	bundle.ExperienceAnalysis, err = p.runExperience(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	emit(StepExperience, StatusCompleted)

	emit(StepProjects, StatusProcessing)
	bundle.ProjectsAnalysis, err = p.runProjects(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	emit(StepProjects, StatusCompleted)

	emit(StepEducation, StatusProcessing)
	bundle.EducationAnalysis, err = p.runEducation(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	emit(StepEducation, StatusCompleted)

	emit(StepFormatting, StatusProcessing)
	bundle.FormattingAnalysis, err = p.runFormatting(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	emit(StepFormatting, StatusCompleted)

	emit(StepLinks, StatusProcessing)
	bundle.LinkValidation = p.links.Validate(ctx, resumeText)
	emit(StepLinks, StatusCompleted)

	emit(StepCompanies, StatusProcessing)
	bundle.CompanyVerification, err = p.verifyCompanies(ctx, bundle.ExperienceAnalysis.Companies)
	if err != nil {
		return nil, err
	}
	emit(StepCompanies, StatusCompleted)

	emit(StepScore, StatusProcessing)
	score := ComputeScore(bundle)
	emit(StepScore, StatusCompleted)

	emit(StepRecommendations, StatusProcessing)
	recommendations := p.generateRecommendations(ctx, bundle, score)
	emit(StepRecommendations, StatusCompleted)

	p.logger.Info("Resume analysis complete",
		"ats_score", score,
		"total_links", bundle.LinkValidation.TotalLinks,
		"valid_links", bundle.LinkValidation.ValidLinks,
		"companies_rated", len(bundle.CompanyVerification.CompanyRatings),
		"recommendations", len(recommendations),
		"total_tokens", p.totalTokens)

	return &types.AnalysisReport{
		ATSScore:        score,
		AnalysisResults: bundle,
		Recommendations: recommendations,
	}, nil
}

func (p *Pipeline) runSkills(ctx context.Context, text string) (types.SkillsAnalysis, error) {
	out, usage, err := p.analyzer.AnalyzeSkills(ctx, text)
	p.recordTokens(usage)
	return out, err
}

func (p *Pipeline) runExperience(ctx context.Context, text string) (types.ExperienceAnalysis, error) {
	out, usage, err := p.analyzer.AnalyzeExperience(ctx, text)
	p.recordTokens(usage)
	return out, err
}

func (p *Pipeline) runProjects(ctx context.Context, text string) (types.ProjectsAnalysis, error) {
	out, usage, err := p.analyzer.AnalyzeProjects(ctx, text)
	p.recordTokens(usage)
	return out, err
}

func (p *Pipeline) runEducation(ctx context.Context, text string) (types.EducationAnalysis, error) {
	out, usage, err := p.analyzer.AnalyzeEducation(ctx, text)
	p.recordTokens(usage)
	return out, err
}

func (p *Pipeline) runFormatting(ctx context.Context, text string) (types.FormattingAnalysis, error) {
	out, usage, err := p.analyzer.AnalyzeFormatting(ctx, text)
	p.recordTokens(usage)
	return out, err
}

// generateRecommendations never fails the run. A model error falls back to a
// generic recommendation set so the report still ships with the score intact.
func (p *Pipeline) generateRecommendations(ctx context.Context, bundle types.AnalysisBundle, score int) []types.Recommendation {
	recs, usage, err := p.analyzer.GenerateRecommendations(ctx, bundle, score)
	p.recordTokens(usage)
	if err != nil {
		p.logger.Warn("Recommendation generation failed, using fallback set",
			"error", err.Error())
		return fallbackRecommendations()
	}
	if p.recMax > 0 && len(recs) > p.recMax {
		recs = recs[:p.recMax]
	}
	return recs
}

func (p *Pipeline) recordTokens(usage *ai.TokenUsage) {
	if usage != nil {
		p.totalTokens += usage.TotalTokens
	}
}

func fallbackRecommendations() []types.Recommendation {
	return []types.Recommendation{
		{Category: "Keywords", Suggestion: "Mirror key terms from the job descriptions you target so automated screeners match your resume", Priority: "high"},
		{Category: "Impact", Suggestion: "Quantify achievements with numbers, percentages, or timeframes wherever possible", Priority: "high"},
		{Category: "Formatting", Suggestion: "Use standard section headings and a single-column layout for reliable automated parsing", Priority: "medium"},
		{Category: "Skills", Suggestion: "List both the technologies you use and the outcomes you delivered with them", Priority: "medium"},
		{Category: "Links", Suggestion: "Verify that every portfolio, GitHub, and LinkedIn URL on the resume resolves correctly", Priority: "low"},
	}
}
