package ats

import (
	"math"

	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// Section weights for the composite score. They sum to 1.0.
const (
	weightSkills     = 0.25
	weightExperience = 0.25
	weightProjects   = 0.20
	weightEducation  = 0.15
	weightFormatting = 0.10
	weightLinks      = 0.05
)

// Resumes with no links at all get a flat score rather than a zero, since
// absent links are not a defect the way broken links are.
const noLinksScore = 8.0

// Company averages above this threshold earn a flat bonus on the final score.
const companyBonusThreshold = 7.0
const companyBonus = 5.0

// ComputeScore collapses an analysis bundle into a 0-100 ATS score. It is a
// pure function of the bundle: same bundle, same score, no side effects.
func ComputeScore(b types.AnalysisBundle) int {
	skillsScore := (b.SkillsAnalysis.SkillsRelevance + b.SkillsAnalysis.MarketDemand) / 2
	experienceScore := b.ExperienceAnalysis.ExperienceQuality
	projectsScore := (b.ProjectsAnalysis.ProjectQuality + b.ProjectsAnalysis.Innovation) / 2
	educationScore := b.EducationAnalysis.EducationQuality

	f := b.FormattingAnalysis
	formattingScore := (f.ATSCompliance + f.Readability + f.Organization + f.Formatting) / 4

	linksScore := noLinksScore
	if b.LinkValidation.TotalLinks > 0 {
		linksScore = float64(b.LinkValidation.ValidLinks) / float64(b.LinkValidation.TotalLinks) * 10
	}

	weighted := skillsScore*weightSkills +
		experienceScore*weightExperience +
		projectsScore*weightProjects +
		educationScore*weightEducation +
		formattingScore*weightFormatting +
		linksScore*weightLinks

	score := weighted * 10
	if b.CompanyVerification.AverageCompanyRating > companyBonusThreshold {
		score += companyBonus
	}

	return min(int(math.Round(score)), 100)
}
