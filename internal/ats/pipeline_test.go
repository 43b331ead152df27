package ats

import (
	"context"
	"testing"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// fakeAnalyzer returns canned section results and records which operations
// ran. Setting failOn to an operation name makes that operation error.
type fakeAnalyzer struct {
	failOn    string
	calls     []string
	companies []string

	verifyCalled bool
	recsCalled   bool
}

func (f *fakeAnalyzer) fail(op string) error {
	if f.failOn == op {
		return apperrors.NewAIError(apperrors.ErrCodeMalformedAIResponse, "Model returned unparseable JSON for "+op, nil)
	}
	return nil
}

func (f *fakeAnalyzer) AnalyzeSkills(ctx context.Context, text string) (types.SkillsAnalysis, *ai.TokenUsage, error) {
	f.calls = append(f.calls, "skills")
	if err := f.fail("skills"); err != nil {
		return types.SkillsAnalysis{}, nil, err
	}
	return types.SkillsAnalysis{Skills: []string{"Go"}, SkillsRelevance: 8, MarketDemand: 8}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeAnalyzer) AnalyzeExperience(ctx context.Context, text string) (types.ExperienceAnalysis, *ai.TokenUsage, error) {
	f.calls = append(f.calls, "experience")
	if err := f.fail("experience"); err != nil {
		return types.ExperienceAnalysis{}, nil, err
	}
	return types.ExperienceAnalysis{Companies: f.companies, ExperienceQuality: 8}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeAnalyzer) AnalyzeProjects(ctx context.Context, text string) (types.ProjectsAnalysis, *ai.TokenUsage, error) {
	f.calls = append(f.calls, "projects")
	if err := f.fail("projects"); err != nil {
		return types.ProjectsAnalysis{}, nil, err
	}
	return types.ProjectsAnalysis{ProjectQuality: 8, Innovation: 8}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeAnalyzer) AnalyzeEducation(ctx context.Context, text string) (types.EducationAnalysis, *ai.TokenUsage, error) {
	f.calls = append(f.calls, "education")
	if err := f.fail("education"); err != nil {
		return types.EducationAnalysis{}, nil, err
	}
	return types.EducationAnalysis{EducationQuality: 8}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeAnalyzer) AnalyzeFormatting(ctx context.Context, text string) (types.FormattingAnalysis, *ai.TokenUsage, error) {
	f.calls = append(f.calls, "formatting")
	if err := f.fail("formatting"); err != nil {
		return types.FormattingAnalysis{}, nil, err
	}
	return types.FormattingAnalysis{ATSCompliance: 8, Readability: 8, Organization: 8, Formatting: 8}, &ai.TokenUsage{TotalTokens: 100}, nil
}

func (f *fakeAnalyzer) VerifyCompanies(ctx context.Context, companies []string) ([]types.CompanyRating, *ai.TokenUsage, error) {
	f.verifyCalled = true
	f.calls = append(f.calls, "companies")
	if err := f.fail("companies"); err != nil {
		return nil, nil, err
	}
	ratings := make([]types.CompanyRating, len(companies))
	for i, c := range companies {
		ratings[i] = types.CompanyRating{Company: c, Rating: 8.5}
	}
	return ratings, &ai.TokenUsage{TotalTokens: 50}, nil
}

func (f *fakeAnalyzer) GenerateRecommendations(ctx context.Context, bundle types.AnalysisBundle, score int) ([]types.Recommendation, *ai.TokenUsage, error) {
	f.recsCalled = true
	f.calls = append(f.calls, "recommendations")
	if err := f.fail("recommendations"); err != nil {
		return nil, nil, err
	}
	return []types.Recommendation{
		{Category: "Skills", Suggestion: "Add cloud certifications", Priority: "high"},
		{Category: "Impact", Suggestion: "Quantify outcomes", Priority: "medium"},
	}, &ai.TokenUsage{TotalTokens: 50}, nil
}

// fakeProber returns a fixed link validation result without touching the
// network.
type fakeProber struct {
	result types.LinkValidation
}

func (f *fakeProber) Validate(ctx context.Context, text string) types.LinkValidation {
	return f.result
}

func newTestPipeline(analyzer *fakeAnalyzer, prober *fakeProber) *Pipeline {
	return NewPipeline(analyzer, prober, 7, testLogger())
}

func TestPipelineAnalyze(t *testing.T) {
	t.Run("full run produces ordered events and the expected score", func(t *testing.T) {
		analyzer := &fakeAnalyzer{companies: []string{"Acme", "Globex"}}
		prober := &fakeProber{result: types.LinkValidation{TotalLinks: 2, ValidLinks: 2}}
		p := newTestPipeline(analyzer, prober)

		var events []ProgressEvent
		report, err := p.Analyze(context.Background(), "resume text", func(e ProgressEvent) {
			events = append(events, e)
		})
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}

		// Sections 8.0, links 10.0, company average 8.5 over threshold.
		if report.ATSScore != 86 {
			t.Errorf("ATSScore = %d, want 86", report.ATSScore)
		}
		if report.AnalysisResults.CompanyVerification.AverageCompanyRating != 8.5 {
			t.Errorf("AverageCompanyRating = %v, want 8.5",
				report.AnalysisResults.CompanyVerification.AverageCompanyRating)
		}
		if len(report.Recommendations) != 2 {
			t.Errorf("Recommendations = %d, want 2", len(report.Recommendations))
		}

		wantSteps := []string{
			StepSkills, StepExperience, StepProjects, StepEducation,
			StepFormatting, StepLinks, StepCompanies, StepScore, StepRecommendations,
		}
		if len(events) != len(wantSteps)*2 {
			t.Fatalf("got %d events, want %d", len(events), len(wantSteps)*2)
		}
		for i, step := range wantSteps {
			processing := events[i*2]
			completed := events[i*2+1]
			if processing.Step != step || processing.Status != StatusProcessing {
				t.Errorf("event[%d] = %+v, want %s processing", i*2, processing, step)
			}
			if completed.Step != step || completed.Status != StatusCompleted {
				t.Errorf("event[%d] = %+v, want %s completed", i*2+1, completed, step)
			}
		}
	})

	t.Run("no companies skips verification and uses neutral average", func(t *testing.T) {
		analyzer := &fakeAnalyzer{}
		p := newTestPipeline(analyzer, &fakeProber{})

		report, err := p.Analyze(context.Background(), "resume text", nil)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if analyzer.verifyCalled {
			t.Error("VerifyCompanies called for empty company list")
		}
		if avg := report.AnalysisResults.CompanyVerification.AverageCompanyRating; avg != NeutralCompanyRating {
			t.Errorf("AverageCompanyRating = %v, want %v", avg, NeutralCompanyRating)
		}
	})

	t.Run("blank company names skip verification like an empty list", func(t *testing.T) {
		analyzer := &fakeAnalyzer{companies: []string{"", "   ", "\t"}}
		p := newTestPipeline(analyzer, &fakeProber{})

		report, err := p.Analyze(context.Background(), "resume text", nil)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if analyzer.verifyCalled {
			t.Error("VerifyCompanies called for blank-only company list")
		}
		if avg := report.AnalysisResults.CompanyVerification.AverageCompanyRating; avg != NeutralCompanyRating {
			t.Errorf("AverageCompanyRating = %v, want %v", avg, NeutralCompanyRating)
		}
	})

	t.Run("section failure aborts before later steps", func(t *testing.T) {
		analyzer := &fakeAnalyzer{failOn: "projects"}
		p := newTestPipeline(analyzer, &fakeProber{})

		_, err := p.Analyze(context.Background(), "resume text", nil)
		if err == nil {
			t.Fatal("Analyze() expected error")
		}
		if analyzer.verifyCalled || analyzer.recsCalled {
			t.Error("later steps ran after section failure")
		}
		want := []string{"skills", "experience", "projects"}
		if len(analyzer.calls) != len(want) {
			t.Errorf("calls = %v, want %v", analyzer.calls, want)
		}
	})

	t.Run("recommendation failure degrades to fallback set", func(t *testing.T) {
		analyzer := &fakeAnalyzer{failOn: "recommendations"}
		p := newTestPipeline(analyzer, &fakeProber{})

		report, err := p.Analyze(context.Background(), "resume text", nil)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(report.Recommendations) == 0 {
			t.Error("expected fallback recommendations, got none")
		}
		if report.ATSScore == 0 {
			t.Error("score lost when recommendations degraded")
		}
	})

	t.Run("recommendation count capped at configured max", func(t *testing.T) {
		analyzer := &fakeAnalyzer{}
		prober := &fakeProber{}
		p := NewPipeline(analyzer, prober, 1, testLogger())

		report, err := p.Analyze(context.Background(), "resume text", nil)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(report.Recommendations) != 1 {
			t.Errorf("Recommendations = %d, want capped at 1", len(report.Recommendations))
		}
	})
}
