package ai

import (
	"fmt"

	"github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// Wire structs mirror the JSON shapes the model is instructed to emit.
// Numeric fields are pointers so a missing field is distinguishable from a
// legitimate zero; presence is checked after parsing and a missing field is
// a malformed-response error, never a silent default.

type skillsWire struct {
	Skills          []string `json:"skills"`
	SkillsRelevance *float64 `json:"skillsRelevance"`
	MarketDemand    *float64 `json:"marketDemand"`
	Analysis        string   `json:"analysis"`
}

type experienceWire struct {
	Companies         []string `json:"companies"`
	Positions         []string `json:"positions"`
	TotalExperience   string   `json:"totalExperience"`
	ExperienceQuality *float64 `json:"experienceQuality"`
	Analysis          string   `json:"analysis"`
}

type projectsWire struct {
	Projects       []string `json:"projects"`
	Technologies   []string `json:"technologies"`
	ProjectQuality *float64 `json:"projectQuality"`
	Innovation     *float64 `json:"innovation"`
	Analysis       string   `json:"analysis"`
}

type educationWire struct {
	Degree           string   `json:"degree"`
	Institution      string   `json:"institution"`
	GraduationYear   string   `json:"graduationYear"`
	GPA              string   `json:"gpa"`
	EducationQuality *float64 `json:"educationQuality"`
	Analysis         string   `json:"analysis"`
}

type formattingWire struct {
	ATSCompliance *float64 `json:"atsCompliance"`
	Readability   *float64 `json:"readability"`
	Organization  *float64 `json:"organization"`
	Formatting    *float64 `json:"formatting"`
	Analysis      string   `json:"analysis"`
}

type companyRatingWire struct {
	Company  string   `json:"company"`
	Rating   *float64 `json:"rating"`
	Analysis string   `json:"analysis"`
}

type companyVerificationWire struct {
	CompanyRatings []companyRatingWire `json:"companyRatings"`
}

type recommendationSetWire struct {
	Recommendations []types.Recommendation `json:"recommendations"`
}

type rankedJobWire struct {
	ID             string `json:"id"`
	RelevanceScore *int   `json:"relevanceScore"`
}

type rankedJobsWire struct {
	RankedJobs []rankedJobWire `json:"rankedJobs"`
}

func missingFieldError(operation, field string) error {
	return errors.NewAIError(errors.ErrCodeMalformedAIResponse,
		fmt.Sprintf("Model response for %s is missing required field %q", operation, field), nil).
		WithContext("operation", operation).
		WithContext("field", field)
}

func (w *skillsWire) validate() (types.SkillsAnalysis, error) {
	switch {
	case w.SkillsRelevance == nil:
		return types.SkillsAnalysis{}, missingFieldError("skills_analysis", "skillsRelevance")
	case w.MarketDemand == nil:
		return types.SkillsAnalysis{}, missingFieldError("skills_analysis", "marketDemand")
	}
	return types.SkillsAnalysis{
		Skills:          w.Skills,
		SkillsRelevance: *w.SkillsRelevance,
		MarketDemand:    *w.MarketDemand,
		Analysis:        w.Analysis,
	}, nil
}

func (w *experienceWire) validate() (types.ExperienceAnalysis, error) {
	if w.ExperienceQuality == nil {
		return types.ExperienceAnalysis{}, missingFieldError("experience_analysis", "experienceQuality")
	}
	return types.ExperienceAnalysis{
		Companies:         w.Companies,
		Positions:         w.Positions,
		TotalExperience:   w.TotalExperience,
		ExperienceQuality: *w.ExperienceQuality,
		Analysis:          w.Analysis,
	}, nil
}

func (w *projectsWire) validate() (types.ProjectsAnalysis, error) {
	switch {
	case w.ProjectQuality == nil:
		return types.ProjectsAnalysis{}, missingFieldError("projects_analysis", "projectQuality")
	case w.Innovation == nil:
		return types.ProjectsAnalysis{}, missingFieldError("projects_analysis", "innovation")
	}
	return types.ProjectsAnalysis{
		Projects:       w.Projects,
		Technologies:   w.Technologies,
		ProjectQuality: *w.ProjectQuality,
		Innovation:     *w.Innovation,
		Analysis:       w.Analysis,
	}, nil
}

func (w *educationWire) validate() (types.EducationAnalysis, error) {
	if w.EducationQuality == nil {
		return types.EducationAnalysis{}, missingFieldError("education_analysis", "educationQuality")
	}
	return types.EducationAnalysis{
		Degree:           w.Degree,
		Institution:      w.Institution,
		GraduationYear:   w.GraduationYear,
		GPA:              w.GPA,
		EducationQuality: *w.EducationQuality,
		Analysis:         w.Analysis,
	}, nil
}

func (w *formattingWire) validate() (types.FormattingAnalysis, error) {
	switch {
	case w.ATSCompliance == nil:
		return types.FormattingAnalysis{}, missingFieldError("formatting_analysis", "atsCompliance")
	case w.Readability == nil:
		return types.FormattingAnalysis{}, missingFieldError("formatting_analysis", "readability")
	case w.Organization == nil:
		return types.FormattingAnalysis{}, missingFieldError("formatting_analysis", "organization")
	case w.Formatting == nil:
		return types.FormattingAnalysis{}, missingFieldError("formatting_analysis", "formatting")
	}
	return types.FormattingAnalysis{
		ATSCompliance: *w.ATSCompliance,
		Readability:   *w.Readability,
		Organization:  *w.Organization,
		Formatting:    *w.Formatting,
		Analysis:      w.Analysis,
	}, nil
}

func (w *companyVerificationWire) validate() ([]types.CompanyRating, error) {
	ratings := make([]types.CompanyRating, 0, len(w.CompanyRatings))
	for _, r := range w.CompanyRatings {
		if r.Rating == nil {
			return nil, missingFieldError("company_verification", "rating")
		}
		ratings = append(ratings, types.CompanyRating{
			Company:  r.Company,
			Rating:   *r.Rating,
			Analysis: r.Analysis,
		})
	}
	return ratings, nil
}
