package ats

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

// linkPattern matches http and https URLs up to the next whitespace. The
// match is intentionally permissive; bad URLs simply fail their probe.
var linkPattern = regexp.MustCompile(`https?://[^\s]+`)

// LinkValidator probes URLs found in resume text with HEAD requests.
// Duplicate links are probed and counted individually.
type LinkValidator struct {
	client *http.Client
	logger *apperrors.Logger
}

// NewLinkValidator creates a validator whose probes time out after
// probeTimeout each.
func NewLinkValidator(probeTimeout time.Duration, logger *apperrors.Logger) *LinkValidator {
	return &LinkValidator{
		client: &http.Client{Timeout: probeTimeout},
		logger: logger,
	}
}

// ExtractLinks returns every URL in the text, in order of appearance.
func ExtractLinks(text string) []string {
	return linkPattern.FindAllString(text, -1)
}

// Validate extracts and probes every link in the resume text. A link is valid
// only on HTTP 200; any other status or a transport error counts against the
// resume. Probes run concurrently and results keep extraction order.
func (v *LinkValidator) Validate(ctx context.Context, resumeText string) types.LinkValidation {
	links := ExtractLinks(resumeText)
	result := types.LinkValidation{
		TotalLinks:     len(links),
		LinkValidation: make([]types.LinkStatus, len(links)),
	}
	if len(links) == 0 {
		return result
	}

	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			result.LinkValidation[i] = v.probe(ctx, link)
		}(i, link)
	}
	wg.Wait()

	for _, status := range result.LinkValidation {
		if status.Valid {
			result.ValidLinks++
		}
	}

	v.logger.Debug("Link validation complete",
		"total_links", result.TotalLinks,
		"valid_links", result.ValidLinks)

	return result
}

func (v *LinkValidator) probe(ctx context.Context, link string) types.LinkStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return types.LinkStatus{Link: link, Status: "error", Valid: false}
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Debug("Link probe failed", "link", link, "error", err.Error())
		return types.LinkStatus{Link: link, Status: "error", Valid: false}
	}
	defer func() { _ = resp.Body.Close() }()

	return types.LinkStatus{
		Link:   link,
		Status: strconv.Itoa(resp.StatusCode),
		Valid:  resp.StatusCode == http.StatusOK,
	}
}
