package ats

import (
	"context"
	"strings"

	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// NeutralCompanyRating is the average used when the resume names no
// employers. No verification call is made in that case.
const NeutralCompanyRating = 5.0

// verifyCompanies rates the resume's employers and computes their average
// locally. The model supplies per-company ratings only; the average is never
// taken from model output.
func (p *Pipeline) verifyCompanies(ctx context.Context, companies []string) (types.CompanyVerification, error) {
	companies = trimBlankNames(companies)
	if len(companies) == 0 {
		return types.CompanyVerification{
			CompanyRatings:       []types.CompanyRating{},
			AverageCompanyRating: NeutralCompanyRating,
		}, nil
	}

	ratings, usage, err := p.analyzer.VerifyCompanies(ctx, companies)
	if err != nil {
		return types.CompanyVerification{}, err
	}
	p.recordTokens(usage)

	verification := types.CompanyVerification{CompanyRatings: ratings}
	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r.Rating
		}
		verification.AverageCompanyRating = sum / float64(len(ratings))
	} else {
		verification.AverageCompanyRating = NeutralCompanyRating
	}

	return verification, nil
}

// trimBlankNames drops whitespace-only entries so a list of blanks is treated
// the same as no employers at all.
func trimBlankNames(companies []string) []string {
	kept := make([]string, 0, len(companies))
	for _, c := range companies {
		if name := strings.TrimSpace(c); name != "" {
			kept = append(kept, name)
		}
	}
	return kept
}
