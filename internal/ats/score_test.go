package ats

import (
	"testing"

	"github.com/jaiwin14/JobnexusAI/internal/types"
)

func uniformBundle(sectionScore float64, totalLinks, validLinks int, companyAvg float64) types.AnalysisBundle {
	return types.AnalysisBundle{
		SkillsAnalysis:     types.SkillsAnalysis{SkillsRelevance: sectionScore, MarketDemand: sectionScore},
		ExperienceAnalysis: types.ExperienceAnalysis{ExperienceQuality: sectionScore},
		ProjectsAnalysis:   types.ProjectsAnalysis{ProjectQuality: sectionScore, Innovation: sectionScore},
		EducationAnalysis:  types.EducationAnalysis{EducationQuality: sectionScore},
		FormattingAnalysis: types.FormattingAnalysis{
			ATSCompliance: sectionScore,
			Readability:   sectionScore,
			Organization:  sectionScore,
			Formatting:    sectionScore,
		},
		LinkValidation:      types.LinkValidation{TotalLinks: totalLinks, ValidLinks: validLinks},
		CompanyVerification: types.CompanyVerification{AverageCompanyRating: companyAvg},
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name     string
		bundle   types.AnalysisBundle
		expected int
	}{
		{
			// Sections 8.0 carry weight 0.95, links 10.0 carry 0.05:
			// (8*0.95 + 10*0.05) * 10 = 81, +5 company bonus = 86.
			name:     "strong resume with valid links and reputable employers",
			bundle:   uniformBundle(8, 2, 2, 8.5),
			expected: 86,
		},
		{
			// No links at all scores the flat 8.0 default, not zero.
			name:     "no links uses default link score",
			bundle:   uniformBundle(8, 0, 0, 5),
			expected: 80,
		},
		{
			// Half the links broken: links score 5.0 instead of 10.0.
			name:     "broken links drag the score down",
			bundle:   uniformBundle(8, 4, 2, 5),
			expected: 79,
		},
		{
			name:     "company average exactly at threshold earns no bonus",
			bundle:   uniformBundle(8, 0, 0, 7.0),
			expected: 80,
		},
		{
			name:     "company average just above threshold earns bonus",
			bundle:   uniformBundle(8, 0, 0, 7.1),
			expected: 85,
		},
		{
			name:     "perfect sections cap at 100",
			bundle:   uniformBundle(10, 3, 3, 9.5),
			expected: 100,
		},
		{
			name:     "zero bundle scores the link default only",
			bundle:   uniformBundle(0, 0, 0, 0),
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.bundle)
			if got != tt.expected {
				t.Errorf("ComputeScore() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestComputeScoreIsPure(t *testing.T) {
	bundle := uniformBundle(7.3, 3, 2, 6.1)
	first := ComputeScore(bundle)
	for range 5 {
		if got := ComputeScore(bundle); got != first {
			t.Fatalf("ComputeScore() not deterministic: %d then %d", first, got)
		}
	}
}
