package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	"github.com/jaiwin14/JobnexusAI/internal/config"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

func testLogger() *apperrors.Logger {
	return apperrors.NewLogger(slog.LevelError)
}

func testJobSearchConfig() *config.JobSearchConfig {
	return &config.JobSearchConfig{
		RapidAPIKey:    "test-key",
		RequestTimeout: 2 * time.Second,
		MaxResults:     15,
		RankingInput:   8,
		RankingOutput:  10,
	}
}

type fakeAI struct {
	refined    types.RefinedQuery
	refineErr  error
	scores     map[string]int
	rankErr    error
	rankedSeen int
}

func (f *fakeAI) RefineQuery(ctx context.Context, input types.JobSearchInput) (types.RefinedQuery, *ai.TokenUsage, error) {
	return f.refined, nil, f.refineErr
}

func (f *fakeAI) RankJobs(ctx context.Context, input types.JobSearchInput, jobs []types.JobPosting) (map[string]int, *ai.TokenUsage, error) {
	f.rankedSeen = len(jobs)
	return f.scores, nil, f.rankErr
}

type fakeProvider struct {
	name string
	jobs []types.JobPosting
	err  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, q types.RefinedQuery) ([]types.JobPosting, error) {
	return f.jobs, f.err
}

func newTestService(aiClient AIClient, providers ...Provider) *Service {
	return &Service{
		ai:        aiClient,
		providers: providers,
		cfg:       testJobSearchConfig(),
		logger:    testLogger(),
		now:       time.Now,
	}
}

func posting(id, title, company string, daysOld int) types.JobPosting {
	return types.JobPosting{
		ID:         id,
		Title:      title,
		Company:    company,
		WorkMode:   "Remote",
		PostedDate: time.Now().Add(-time.Duration(daysOld) * 24 * time.Hour),
	}
}

func searchInput() types.JobSearchInput {
	return types.JobSearchInput{JobTitle: "Software Engineer", WorkMode: "Remote", Location: "Berlin, Germany"}
}

func TestServiceSearch(t *testing.T) {
	t.Run("missing fields rejected", func(t *testing.T) {
		s := newTestService(&fakeAI{})
		_, err := s.Search(context.Background(), types.JobSearchInput{JobTitle: "Engineer"})
		if err == nil {
			t.Fatal("Search() expected validation error")
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeInvalidRequest {
			t.Errorf("expected INVALID_REQUEST, got %v", err)
		}
	})

	t.Run("results merged, deduped, and ranked by model scores", func(t *testing.T) {
		aiClient := &fakeAI{
			refined: types.RefinedQuery{OptimizedJobTitle: "Software Engineer", City: "Berlin", Country: "Germany", WorkMode: "Remote"},
			scores:  map[string]int{"a": 95, "b": 40, "c": 70},
		}
		p1 := &fakeProvider{name: "one", jobs: []types.JobPosting{
			posting("a", "Software Engineer", "Acme", 1),
			posting("b", "QA Engineer", "Globex", 1),
		}}
		p2 := &fakeProvider{name: "two", jobs: []types.JobPosting{
			posting("c", "Backend Engineer", "Initech", 1),
			posting("dup", "Software Engineer", "acme", 1), // dedup key matches "a"
		}}

		s := newTestService(aiClient, p1, p2)
		out, err := s.Search(context.Background(), searchInput())
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}

		if !out.Success {
			t.Error("Success = false, want true")
		}
		if out.TotalResults != 3 {
			t.Fatalf("TotalResults = %d, want 3 after dedup", out.TotalResults)
		}
		if out.Jobs[0].ID != "a" || out.Jobs[1].ID != "c" || out.Jobs[2].ID != "b" {
			t.Errorf("order = %s,%s,%s, want a,c,b",
				out.Jobs[0].ID, out.Jobs[1].ID, out.Jobs[2].ID)
		}
	})

	t.Run("no jobs yields unsuccessful output, not an error", func(t *testing.T) {
		s := newTestService(&fakeAI{}, &fakeProvider{name: "empty"})
		out, err := s.Search(context.Background(), searchInput())
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if out.Success {
			t.Error("Success = true, want false for empty results")
		}
		if out.Message == "" {
			t.Error("expected a message explaining the empty result")
		}
	})

	t.Run("provider failure does not fail the search", func(t *testing.T) {
		aiClient := &fakeAI{scores: map[string]int{"a": 80}}
		broken := &fakeProvider{name: "broken", err: errors.New("gateway timeout")}
		working := &fakeProvider{name: "working", jobs: []types.JobPosting{posting("a", "Software Engineer", "Acme", 1)}}

		s := newTestService(aiClient, broken, working)
		out, err := s.Search(context.Background(), searchInput())
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if out.TotalResults != 1 {
			t.Errorf("TotalResults = %d, want 1", out.TotalResults)
		}
	})

	t.Run("ranking failure falls back to heuristic", func(t *testing.T) {
		aiClient := &fakeAI{rankErr: errors.New("model down")}
		p := &fakeProvider{name: "one", jobs: []types.JobPosting{
			posting("exact", "Software Engineer", "Acme", 1),
			posting("partial", "Engineer in Test", "Globex", 40),
		}}

		s := newTestService(aiClient, p)
		out, err := s.Search(context.Background(), searchInput())
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if out.Jobs[0].ID != "exact" {
			t.Errorf("top job = %s, want exact title match first", out.Jobs[0].ID)
		}
		if out.Jobs[0].RelevanceScore <= out.Jobs[1].RelevanceScore {
			t.Errorf("scores not descending: %d then %d",
				out.Jobs[0].RelevanceScore, out.Jobs[1].RelevanceScore)
		}
	})

	t.Run("model only sees the ranking input window", func(t *testing.T) {
		aiClient := &fakeAI{scores: map[string]int{}}
		var many []types.JobPosting
		for i := range 12 {
			many = append(many, posting(
				string(rune('a'+i)),
				"Software Engineer "+string(rune('a'+i)),
				"Company "+string(rune('a'+i)),
				1,
			))
		}
		p := &fakeProvider{name: "big", jobs: many}

		s := newTestService(aiClient, p)
		out, err := s.Search(context.Background(), searchInput())
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if aiClient.rankedSeen != 8 {
			t.Errorf("model saw %d jobs, want 8", aiClient.rankedSeen)
		}
		if len(out.Jobs) != 10 {
			t.Errorf("output = %d jobs, want capped at 10", len(out.Jobs))
		}
	})
}

func TestFallbackRefine(t *testing.T) {
	tests := []struct {
		name        string
		input       types.JobSearchInput
		wantCity    string
		wantCountry string
	}{
		{
			name:        "city and country split on comma",
			input:       types.JobSearchInput{JobTitle: "Data Scientist", WorkMode: "Hybrid", Location: "Berlin, Germany"},
			wantCity:    "Berlin",
			wantCountry: "Germany",
		},
		{
			name:        "no comma keeps whole location as city",
			input:       types.JobSearchInput{JobTitle: "Data Scientist", WorkMode: "Hybrid", Location: "Singapore"},
			wantCity:    "Singapore",
			wantCountry: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fallbackRefine(tt.input)
			if got.City != tt.wantCity || got.Country != tt.wantCountry {
				t.Errorf("city/country = %q/%q, want %q/%q",
					got.City, got.Country, tt.wantCity, tt.wantCountry)
			}
			if got.OptimizedJobTitle != tt.input.JobTitle {
				t.Errorf("OptimizedJobTitle = %q, want passthrough", got.OptimizedJobTitle)
			}
			if len(got.SearchKeywords) == 0 {
				t.Error("SearchKeywords empty, want title words")
			}
		})
	}
}

func TestHeuristicScore(t *testing.T) {
	s := newTestService(&fakeAI{})
	input := searchInput()

	t.Run("exact title recent remote caps near top", func(t *testing.T) {
		job := posting("x", "Senior Software Engineer", "Acme", 2)
		// 50 full match + 20 two word matches + 30 work mode + 20 recency = 120, capped.
		if got := s.heuristicScore(job, input); got != 100 {
			t.Errorf("score = %d, want 100", got)
		}
	})

	t.Run("stale unrelated posting scores low", func(t *testing.T) {
		job := types.JobPosting{
			ID: "y", Title: "Accountant", Company: "Ledger LLC",
			WorkMode: "On-site", PostedDate: time.Now().Add(-60 * 24 * time.Hour),
		}
		if got := s.heuristicScore(job, input); got != 0 {
			t.Errorf("score = %d, want 0", got)
		}
	})

	t.Run("recency tiers", func(t *testing.T) {
		base := types.JobPosting{Title: "Accountant", WorkMode: "On-site"}

		fresh := base
		fresh.PostedDate = time.Now().Add(-24 * time.Hour)
		if got := s.heuristicScore(fresh, input); got != 20 {
			t.Errorf("fresh score = %d, want 20", got)
		}

		month := base
		month.PostedDate = time.Now().Add(-20 * 24 * time.Hour)
		if got := s.heuristicScore(month, input); got != 10 {
			t.Errorf("month score = %d, want 10", got)
		}
	})
}

func TestDedupeJobs(t *testing.T) {
	jobs := []types.JobPosting{
		{ID: "1", Title: "Engineer", Company: "Acme"},
		{ID: "2", Title: "engineer", Company: "ACME"},
		{ID: "3", Title: "Engineer", Company: "Globex"},
	}
	got := dedupeJobs(jobs)
	if len(got) != 2 {
		t.Fatalf("dedupeJobs() = %d jobs, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("order = %s,%s, want 1,3", got[0].ID, got[1].ID)
	}
}

func TestStaticLists(t *testing.T) {
	if len(SupportedLocations()) != 35 {
		t.Errorf("SupportedLocations() = %d entries, want 35", len(SupportedLocations()))
	}
	if len(PopularJobTitles()) != 20 {
		t.Errorf("PopularJobTitles() = %d entries, want 20", len(PopularJobTitles()))
	}
}
