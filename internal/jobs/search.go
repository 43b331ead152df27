package jobs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	"github.com/jaiwin14/JobnexusAI/internal/config"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// AIClient is the slice of AI operations the search service consumes.
type AIClient interface {
	RefineQuery(ctx context.Context, input types.JobSearchInput) (types.RefinedQuery, *ai.TokenUsage, error)
	RankJobs(ctx context.Context, input types.JobSearchInput, jobs []types.JobPosting) (map[string]int, *ai.TokenUsage, error)
}

// Service orchestrates a job search: query refinement, provider fan-out,
// dedup, and relevance ranking. Refinement and ranking degrade to
// deterministic fallbacks when the model is unavailable.
type Service struct {
	ai        AIClient
	providers []Provider
	cfg       *config.JobSearchConfig
	logger    *apperrors.Logger

	// now is swappable for recency-score tests
	now func() time.Time
}

// NewService wires the search service with the standard provider set.
func NewService(aiClient AIClient, cfg *config.JobSearchConfig, logger *apperrors.Logger) *Service {
	return &Service{
		ai: aiClient,
		providers: []Provider{
			NewJSearchProvider(cfg, logger),
			NewPRLabsProvider(cfg, logger),
		},
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Search runs the full pipeline for one search request.
func (s *Service) Search(ctx context.Context, input types.JobSearchInput) (*types.JobSearchOutput, error) {
	if input.JobTitle == "" || input.WorkMode == "" || input.Location == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest,
			"jobTitle, workMode, and location are required", nil)
	}

	refined := s.refineQuery(ctx, input)

	merged := s.fanOut(ctx, refined)
	merged = dedupeJobs(merged)
	if s.cfg.MaxResults > 0 && len(merged) > s.cfg.MaxResults {
		merged = merged[:s.cfg.MaxResults]
	}

	if len(merged) == 0 {
		return &types.JobSearchOutput{
			Success:        false,
			Message:        fmt.Sprintf("No such jobs found in %s.", input.Location),
			Jobs:           []types.JobPosting{},
			SearchCriteria: input,
			TotalResults:   0,
		}, nil
	}

	ranked := s.rankJobs(ctx, input, merged)

	return &types.JobSearchOutput{
		Success:        true,
		Jobs:           ranked,
		SearchCriteria: input,
		TotalResults:   len(ranked),
	}, nil
}

// refineQuery asks the model to optimize the raw search, falling back to a
// deterministic interpretation when it cannot.
func (s *Service) refineQuery(ctx context.Context, input types.JobSearchInput) types.RefinedQuery {
	refined, _, err := s.ai.RefineQuery(ctx, input)
	if err != nil {
		s.logger.Warn("Query refinement failed, using deterministic fallback",
			"error", err.Error())
		return fallbackRefine(input)
	}
	if refined.OptimizedJobTitle == "" {
		refined.OptimizedJobTitle = input.JobTitle
	}
	if refined.WorkMode == "" {
		refined.WorkMode = input.WorkMode
	}
	if refined.City == "" && refined.Country == "" {
		fallback := fallbackRefine(input)
		refined.City = fallback.City
		refined.Country = fallback.Country
	}
	return refined
}

// fallbackRefine interprets the raw input without the model. The location
// splits on its first comma into city and country.
func fallbackRefine(input types.JobSearchInput) types.RefinedQuery {
	city := strings.TrimSpace(input.Location)
	country := ""
	if idx := strings.IndexByte(input.Location, ','); idx >= 0 {
		city = strings.TrimSpace(input.Location[:idx])
		country = strings.TrimSpace(input.Location[idx+1:])
	}
	return types.RefinedQuery{
		OptimizedJobTitle: input.JobTitle,
		WorkMode:          input.WorkMode,
		City:              city,
		Country:           country,
		SearchKeywords:    strings.Fields(strings.ToLower(input.JobTitle)),
	}
}

// fanOut queries every provider concurrently and merges whatever succeeds.
// A provider failure is logged, never fatal; an empty merge is handled by the
// caller.
func (s *Service) fanOut(ctx context.Context, refined types.RefinedQuery) []types.JobPosting {
	var mu sync.Mutex
	var merged []types.JobPosting
	var wg sync.WaitGroup

	for _, provider := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			jobs, err := p.Search(ctx, refined)
			if err != nil {
				s.logger.Warn("Job provider failed",
					"provider", p.Name(),
					"error", err.Error())
				return
			}
			mu.Lock()
			merged = append(merged, jobs...)
			mu.Unlock()
		}(provider)
	}
	wg.Wait()

	return merged
}

// dedupeJobs drops postings that repeat an earlier title and company pair,
// case-insensitively. Order of first appearance is preserved.
func dedupeJobs(jobs []types.JobPosting) []types.JobPosting {
	seen := make(map[string]struct{}, len(jobs))
	out := jobs[:0]
	for _, job := range jobs {
		key := strings.ToLower(job.Title + "-" + job.Company)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}

// rankJobs scores and orders the merged results. The model scores the first
// RankingInput jobs; everything else, and everything on model failure, gets
// the heuristic score. The top RankingOutput jobs are returned.
func (s *Service) rankJobs(ctx context.Context, input types.JobSearchInput, jobs []types.JobPosting) []types.JobPosting {
	modelInput := jobs
	if s.cfg.RankingInput > 0 && len(modelInput) > s.cfg.RankingInput {
		modelInput = modelInput[:s.cfg.RankingInput]
	}

	scores, _, err := s.ai.RankJobs(ctx, input, modelInput)
	if err != nil {
		s.logger.Warn("Model ranking failed, using heuristic scores",
			"error", err.Error())
		scores = nil
	}

	for i := range jobs {
		if score, ok := scores[jobs[i].ID]; ok {
			jobs[i].RelevanceScore = min(score, 100)
			continue
		}
		jobs[i].RelevanceScore = s.heuristicScore(jobs[i], input)
	}

	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].RelevanceScore > jobs[b].RelevanceScore
	})

	if s.cfg.RankingOutput > 0 && len(jobs) > s.cfg.RankingOutput {
		jobs = jobs[:s.cfg.RankingOutput]
	}
	return jobs
}

// heuristicScore rates a posting against the search criteria without the
// model: full title match, per-word matches, work mode, and posting recency.
func (s *Service) heuristicScore(job types.JobPosting, input types.JobSearchInput) int {
	score := 0

	titleLower := strings.ToLower(job.Title)
	searchLower := strings.ToLower(input.JobTitle)

	if strings.Contains(titleLower, searchLower) {
		score += 50
	}
	for _, word := range strings.Fields(searchLower) {
		if strings.Contains(titleLower, word) {
			score += 10
		}
	}

	if job.WorkMode == input.WorkMode {
		score += 30
	}

	daysSincePosted := s.now().Sub(job.PostedDate).Hours() / 24
	switch {
	case daysSincePosted <= 7:
		score += 20
	case daysSincePosted <= 30:
		score += 10
	}

	return min(score, 100)
}
