package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jaiwin14/JobnexusAI/internal/config"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// Provider is one upstream job board behind the RapidAPI gateway.
type Provider interface {
	Name() string
	Search(ctx context.Context, query types.RefinedQuery) ([]types.JobPosting, error)
}

const (
	jsearchHost = "jsearch.p.rapidapi.com"
	prLabsHost  = "jobs-search-api.p.rapidapi.com"
)

// rapidAPIClient carries the shared transport and auth headers for RapidAPI
// providers.
type rapidAPIClient struct {
	httpClient *http.Client
	apiKey     string
	logger     *apperrors.Logger
}

func newRapidAPIClient(cfg *config.JobSearchConfig, logger *apperrors.Logger) rapidAPIClient {
	return rapidAPIClient{
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiKey: cfg.RapidAPIKey,
		logger: logger,
	}
}

// get performs a RapidAPI request and decodes the JSON body into out.
func (c *rapidAPIClient) get(ctx context.Context, host, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return apperrors.NewInternalError(apperrors.ErrCodeInvalidRequest,
			"Failed to build provider request", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError(apperrors.ErrCodeServiceUnavailable,
			fmt.Sprintf("Job provider %s is unreachable", host), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewNetworkError(apperrors.ErrCodeServiceUnavailable,
			fmt.Sprintf("Job provider %s returned status %d", host, resp.StatusCode), nil).
			WithContext("status", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewNetworkError(apperrors.ErrCodeServiceUnavailable,
			fmt.Sprintf("Job provider %s returned an unparseable response", host), err)
	}
	return nil
}

// locationString renders the refined query's location for provider requests.
func locationString(q types.RefinedQuery) string {
	switch {
	case q.City != "" && q.Country != "":
		return q.City + ", " + q.Country
	case q.City != "":
		return q.City
	default:
		return q.Country
	}
}

// JSearchProvider queries the JSearch board.
type JSearchProvider struct {
	rapidAPIClient
	baseURL string
}

// NewJSearchProvider creates the JSearch provider.
func NewJSearchProvider(cfg *config.JobSearchConfig, logger *apperrors.Logger) *JSearchProvider {
	return &JSearchProvider{
		rapidAPIClient: newRapidAPIClient(cfg, logger),
		baseURL:        "https://" + jsearchHost,
	}
}

func (p *JSearchProvider) Name() string { return "jsearch" }

type jsearchJob struct {
	JobID                string `json:"job_id"`
	JobTitle             string `json:"job_title"`
	EmployerName         string `json:"employer_name"`
	JobCity              string `json:"job_city"`
	JobCountry           string `json:"job_country"`
	JobDescription       string `json:"job_description"`
	JobSalary            string `json:"job_salary"`
	JobEmploymentType    string `json:"job_employment_type"`
	JobApplyLink         string `json:"job_apply_link"`
	JobPostedAtTimestamp int64  `json:"job_posted_at_timestamp"`
	JobIsRemote          bool   `json:"job_is_remote"`
	EmployerLogo         string `json:"employer_logo"`
}

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

// Search implements Provider. The query text follows the board's expected
// "title in location" form.
func (p *JSearchProvider) Search(ctx context.Context, query types.RefinedQuery) ([]types.JobPosting, error) {
	location := locationString(query)

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s in %s", query.OptimizedJobTitle, location))
	params.Set("page", "1")
	params.Set("num_pages", "1")

	var decoded jsearchResponse
	if err := p.get(ctx, jsearchHost, p.baseURL+"/search?"+params.Encode(), &decoded); err != nil {
		return nil, err
	}

	jobs := make([]types.JobPosting, 0, len(decoded.Data))
	for _, j := range decoded.Data {
		jobLocation := location
		if j.JobCity != "" && j.JobCountry != "" {
			jobLocation = j.JobCity + ", " + j.JobCountry
		}

		posted := time.Now()
		if j.JobPostedAtTimestamp > 0 {
			posted = time.Unix(j.JobPostedAtTimestamp, 0)
		}

		jobs = append(jobs, normalizePosting(types.JobPosting{
			ID:          j.JobID,
			Title:       j.JobTitle,
			Company:     j.EmployerName,
			Location:    jobLocation,
			Description: j.JobDescription,
			Salary:      j.JobSalary,
			WorkMode:    firstNonEmpty(j.JobEmploymentType, query.WorkMode),
			URL:         j.JobApplyLink,
			PostedDate:  posted,
			IsRemote:    j.JobIsRemote,
			Logo:        j.EmployerLogo,
		}))
	}

	p.logger.Debug("Provider search complete",
		"provider", p.Name(),
		"results", len(jobs))

	return jobs, nil
}

// PRLabsProvider queries the PR Labs job search board.
type PRLabsProvider struct {
	rapidAPIClient
	baseURL string
	limit   int
}

// NewPRLabsProvider creates the PR Labs provider.
func NewPRLabsProvider(cfg *config.JobSearchConfig, logger *apperrors.Logger) *PRLabsProvider {
	return &PRLabsProvider{
		rapidAPIClient: newRapidAPIClient(cfg, logger),
		baseURL:        "https://" + prLabsHost,
		limit:          10,
	}
}

func (p *PRLabsProvider) Name() string { return "prlabs" }

type prLabsJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	Salary      string `json:"salary"`
	SalaryRange string `json:"salary_range"`
	JobType     string `json:"job_type"`
	URL         string `json:"url"`
	ApplyURL    string `json:"apply_url"`
	PostedDate  string `json:"posted_date"`
}

type prLabsResponse struct {
	Jobs []prLabsJob `json:"jobs"`
	Data []prLabsJob `json:"data"`
}

// Search implements Provider.
func (p *PRLabsProvider) Search(ctx context.Context, query types.RefinedQuery) ([]types.JobPosting, error) {
	location := locationString(query)

	params := url.Values{}
	params.Set("q", query.OptimizedJobTitle)
	params.Set("location", location)
	params.Set("limit", fmt.Sprintf("%d", p.limit))

	var decoded prLabsResponse
	if err := p.get(ctx, prLabsHost, p.baseURL+"/api/jobs/search?"+params.Encode(), &decoded); err != nil {
		return nil, err
	}

	raw := decoded.Jobs
	if len(raw) == 0 {
		raw = decoded.Data
	}

	jobs := make([]types.JobPosting, 0, len(raw))
	for _, j := range raw {
		posted := time.Now()
		if j.PostedDate != "" {
			if t, err := time.Parse(time.RFC3339, j.PostedDate); err == nil {
				posted = t
			}
		}

		workMode := firstNonEmpty(j.JobType, query.WorkMode)

		jobs = append(jobs, normalizePosting(types.JobPosting{
			ID:          j.ID,
			Title:       firstNonEmpty(j.Title, j.Position),
			Company:     firstNonEmpty(j.Company, j.CompanyName),
			Location:    firstNonEmpty(j.Location, location),
			Description: firstNonEmpty(j.Description, j.Snippet),
			Salary:      firstNonEmpty(j.Salary, j.SalaryRange),
			WorkMode:    workMode,
			URL:         firstNonEmpty(j.URL, j.ApplyURL),
			PostedDate:  posted,
			IsRemote:    strings.Contains(strings.ToLower(workMode), "remote"),
		}))
	}

	p.logger.Debug("Provider search complete",
		"provider", p.Name(),
		"results", len(jobs))

	return jobs, nil
}

// normalizePosting fills the placeholder defaults every provider result must
// carry and assigns an ID when the board supplied none.
func normalizePosting(job types.JobPosting) types.JobPosting {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Title == "" {
		job.Title = "Unknown Title"
	}
	if job.Company == "" {
		job.Company = "Unknown Company"
	}
	if job.Location == "" {
		job.Location = "Not specified"
	}
	if job.Description == "" {
		job.Description = "No description available"
	}
	if job.Salary == "" {
		job.Salary = "Not specified"
	}
	if job.URL == "" {
		job.URL = "#"
	}
	if job.PostedDate.IsZero() {
		job.PostedDate = time.Now()
	}
	return job
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
