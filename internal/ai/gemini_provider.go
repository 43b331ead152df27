package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jaiwin14/JobnexusAI/internal/config"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *apperrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *apperrors.Logger) (*GeminiProvider, error) {
	// The per-operation timeout is enforced at the transport level so a hung
	// model call cannot outlive its configured budget.
	httpClient := &http.Client{
		Timeout: *cfg.Timeout,
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client:     client,
		httpClient: httpClient,
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, getAIModelCheckTimeout())
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection issues) are retryable
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Google API errors with transient HTTP status codes
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generate runs one content generation through the circuit breaker and retry
// stack and returns the raw response text. Every provider method funnels
// through here.
func (g *GeminiProvider) generate(ctx context.Context, operationName string, contents []*genai.Content, systemPrompt string, spanAttributes ...attribute.KeyValue) (string, *TokenUsage, error) {
	tracer := otel.Tracer("jobnexus.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	genaiConfig := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, contents, genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result.Text(), tokenUsage, nil
}

// executeJSONOperation runs a text generation and parses the sanitized
// response into Out. Parse failures carry the malformed-response error code.
func executeJSONOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out

	raw, tokenUsage, err := g.generate(ctx, operationName, genai.Text(userPrompt), systemPrompt, spanAttributes...)
	if err != nil {
		return output, nil, err
	}

	if err := ParseModelJSON(operationName, raw, &output); err != nil {
		return output, nil, err
	}

	return output, tokenUsage, nil
}

// AnalyzeSkills implements AIProvider for the skills section analyzer
func (g *GeminiProvider) AnalyzeSkills(ctx context.Context, resumeText string) (types.SkillsAnalysis, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("skillsAnalysis"), resumeText)

	wire, tokenUsage, err := executeJSONOperation[skillsWire](
		g, ctx, "skills_analysis", prompt, g.getSystemPrompt("sectionAnalysis"),
		attribute.Int("input.resume_length", len(resumeText)),
	)
	if err != nil {
		return types.SkillsAnalysis{}, nil, err
	}

	out, err := wire.validate()
	if err != nil {
		return types.SkillsAnalysis{}, nil, err
	}
	return out, tokenUsage, nil
}

// AnalyzeExperience implements AIProvider for the experience section analyzer
func (g *GeminiProvider) AnalyzeExperience(ctx context.Context, resumeText string) (types.ExperienceAnalysis, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("experienceAnalysis"), resumeText)

	wire, tokenUsage, err := executeJSONOperation[experienceWire](
		g, ctx, "experience_analysis", prompt, g.getSystemPrompt("sectionAnalysis"),
		attribute.Int("input.resume_length", len(resumeText)),
	)
	if err != nil {
		return types.ExperienceAnalysis{}, nil, err
	}

	out, err := wire.validate()
	if err != nil {
		return types.ExperienceAnalysis{}, nil, err
	}
	return out, tokenUsage, nil
}

// AnalyzeProjects implements AIProvider for the projects section analyzer
func (g *GeminiProvider) AnalyzeProjects(ctx context.Context, resumeText string) (types.ProjectsAnalysis, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("projectsAnalysis"), resumeText)

	wire, tokenUsage, err := executeJSONOperation[projectsWire](
		g, ctx, "projects_analysis", prompt, g.getSystemPrompt("sectionAnalysis"),
		attribute.Int("input.resume_length", len(resumeText)),
	)
	if err != nil {
		return types.ProjectsAnalysis{}, nil, err
	}

	out, err := wire.validate()
	if err != nil {
		return types.ProjectsAnalysis{}, nil, err
	}
	return out, tokenUsage, nil
}

// AnalyzeEducation implements AIProvider for the education section analyzer
func (g *GeminiProvider) AnalyzeEducation(ctx context.Context, resumeText string) (types.EducationAnalysis, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("educationAnalysis"), resumeText)

	wire, tokenUsage, err := executeJSONOperation[educationWire](
		g, ctx, "education_analysis", prompt, g.getSystemPrompt("sectionAnalysis"),
		attribute.Int("input.resume_length", len(resumeText)),
	)
	if err != nil {
		return types.EducationAnalysis{}, nil, err
	}

	out, err := wire.validate()
	if err != nil {
		return types.EducationAnalysis{}, nil, err
	}
	return out, tokenUsage, nil
}

// AnalyzeFormatting implements AIProvider for the formatting analyzer
func (g *GeminiProvider) AnalyzeFormatting(ctx context.Context, resumeText string) (types.FormattingAnalysis, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("formattingAnalysis"), resumeText)

	wire, tokenUsage, err := executeJSONOperation[formattingWire](
		g, ctx, "formatting_analysis", prompt, g.getSystemPrompt("sectionAnalysis"),
		attribute.Int("input.resume_length", len(resumeText)),
	)
	if err != nil {
		return types.FormattingAnalysis{}, nil, err
	}

	out, err := wire.validate()
	if err != nil {
		return types.FormattingAnalysis{}, nil, err
	}
	return out, tokenUsage, nil
}

// VerifyCompanies implements AIProvider for employer reputation ratings
func (g *GeminiProvider) VerifyCompanies(ctx context.Context, companies []string) ([]types.CompanyRating, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("companyVerification"), strings.Join(companies, ", "))

	wire, tokenUsage, err := executeJSONOperation[companyVerificationWire](
		g, ctx, "company_verification", prompt, g.getSystemPrompt("companyVerification"),
		attribute.Int("input.company_count", len(companies)),
	)
	if err != nil {
		return nil, nil, err
	}

	ratings, err := wire.validate()
	if err != nil {
		return nil, nil, err
	}
	return ratings, tokenUsage, nil
}

// GenerateRecommendations implements AIProvider for improvement suggestions
func (g *GeminiProvider) GenerateRecommendations(ctx context.Context, bundle types.AnalysisBundle, atsScore int) ([]types.Recommendation, *TokenUsage, error) {
	bundleJSON, err := json.Marshal(bundle)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(apperrors.ErrCodeInvalidRequest,
			"Failed to serialize analysis bundle for recommendations", err)
	}

	prompt := fmt.Sprintf(g.getUserPrompt("recommendations"), atsScore, string(bundleJSON))

	wire, tokenUsage, err := executeJSONOperation[recommendationSetWire](
		g, ctx, "recommendations", prompt, g.getSystemPrompt("recommendations"),
		attribute.Int("ats.score", atsScore),
	)
	if err != nil {
		return nil, nil, err
	}

	return wire.Recommendations, tokenUsage, nil
}

// RefineQuery implements AIProvider for job search query refinement
func (g *GeminiProvider) RefineQuery(ctx context.Context, input types.JobSearchInput) (types.RefinedQuery, *TokenUsage, error) {
	prompt := fmt.Sprintf(g.getUserPrompt("queryRefinement"), input.JobTitle, input.WorkMode, input.Location)

	refined, tokenUsage, err := executeJSONOperation[types.RefinedQuery](
		g, ctx, "query_refinement", prompt, g.getSystemPrompt("queryRefinement"),
		attribute.String("input.job_title", input.JobTitle),
	)
	if err != nil {
		return types.RefinedQuery{}, nil, err
	}

	return refined, tokenUsage, nil
}

// RankJobs implements AIProvider for relevance scoring. The result maps job
// IDs to 0-100 scores; jobs the model omits keep their existing score.
func (g *GeminiProvider) RankJobs(ctx context.Context, input types.JobSearchInput, jobs []types.JobPosting) (map[string]int, *TokenUsage, error) {
	listings, err := json.Marshal(jobs)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(apperrors.ErrCodeInvalidRequest,
			"Failed to serialize job listings for ranking", err)
	}

	prompt := fmt.Sprintf(g.getUserPrompt("jobRanking"),
		input.JobTitle, input.WorkMode, input.Location, string(listings))

	wire, tokenUsage, err := executeJSONOperation[rankedJobsWire](
		g, ctx, "job_ranking", prompt, g.getSystemPrompt("jobRanking"),
		attribute.Int("input.job_count", len(jobs)),
	)
	if err != nil {
		return nil, nil, err
	}

	scores := make(map[string]int, len(wire.RankedJobs))
	for _, r := range wire.RankedJobs {
		if r.RelevanceScore == nil {
			return nil, nil, missingFieldError("job_ranking", "relevanceScore")
		}
		scores[r.ID] = *r.RelevanceScore
	}
	return scores, tokenUsage, nil
}

// ExtractImageText implements AIProvider for resume image transcription
func (g *GeminiProvider) ExtractImageText(ctx context.Context, mimeType string, data []byte) (string, *TokenUsage, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(g.getUserPrompt("resumeOCR")),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	text, tokenUsage, err := g.generate(ctx, "resume_ocr", contents, g.getSystemPrompt("resumeOCR"),
		attribute.String("input.mime_type", mimeType),
		attribute.Int("input.image_bytes", len(data)),
	)
	if err != nil {
		return "", nil, err
	}

	return strings.TrimSpace(text), tokenUsage, nil
}

// Chat implements AIProvider for career counseling conversations. The prompt
// carries at most historyLimit prior turns plus an optional reference
// document supplied by the caller.
func (g *GeminiProvider) Chat(ctx context.Context, input types.ChatInput, historyLimit int) (string, *TokenUsage, error) {
	var b strings.Builder

	history := input.History
	if historyLimit > 0 && len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	if len(history) > 0 {
		b.WriteString("Previous conversation context:\n")
		for _, msg := range history {
			speaker := "HireBot"
			if msg.Role == "user" {
				speaker = "User"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
		}
		b.WriteString("\n")
	}

	if input.Document != "" {
		fmt.Fprintf(&b, "Document content for reference:\n%s\n\n", input.Document)
	}

	fmt.Fprintf(&b, "Current user query: %s\n\nPlease provide a helpful, motivating, and emotionally intelligent response:", input.Message)

	reply, tokenUsage, err := g.generate(ctx, "career_chat", genai.Text(b.String()), g.getSystemPrompt("careerChat"),
		attribute.Int("input.history_turns", len(history)),
		attribute.Bool("input.has_document", input.Document != ""),
	)
	if err != nil {
		return "", nil, err
	}

	return strings.TrimSpace(reply), tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the configured AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	if config.GlobalConfig != nil && config.GlobalConfig.Observability.HealthCheck.AIModelCheckTimeout > 0 {
		return config.GlobalConfig.Observability.HealthCheck.AIModelCheckTimeout
	}
	return 10 * time.Second
}

// getSystemPrompt returns the system prompt for a prompt key, preferring
// file-loaded content, then config, then built-in defaults
func (g *GeminiProvider) getSystemPrompt(key string) string {
	loaded := config.GetPromptsForOperation(g.operationType)
	cfg := g.config.CustomPrompts.SystemPrompts

	switch key {
	case "sectionAnalysis":
		return resolvePrompt(loaded.SystemPrompts.SectionAnalysis, cfg.SectionAnalysis, DefaultSystemPrompts.SectionAnalysis)
	case "companyVerification":
		return resolvePrompt(loaded.SystemPrompts.CompanyVerification, cfg.CompanyVerification, DefaultSystemPrompts.CompanyVerification)
	case "recommendations":
		return resolvePrompt(loaded.SystemPrompts.Recommendations, cfg.Recommendations, DefaultSystemPrompts.Recommendations)
	case "queryRefinement":
		return resolvePrompt(loaded.SystemPrompts.QueryRefinement, cfg.QueryRefinement, DefaultSystemPrompts.QueryRefinement)
	case "jobRanking":
		return resolvePrompt(loaded.SystemPrompts.JobRanking, cfg.JobRanking, DefaultSystemPrompts.JobRanking)
	case "careerChat":
		return resolvePrompt(loaded.SystemPrompts.CareerChat, cfg.CareerChat, DefaultSystemPrompts.CareerChat)
	case "resumeOCR":
		return DefaultSystemPrompts.ResumeOCR
	default:
		return ""
	}
}

// getUserPrompt returns the user prompt template for a prompt key
func (g *GeminiProvider) getUserPrompt(key string) string {
	loaded := config.GetPromptsForOperation(g.operationType)
	cfg := g.config.CustomPrompts.UserPrompts

	switch key {
	case "skillsAnalysis":
		return resolvePrompt(loaded.UserPrompts.SkillsAnalysis, cfg.SkillsAnalysis, DefaultUserPrompts.SkillsAnalysis)
	case "experienceAnalysis":
		return resolvePrompt(loaded.UserPrompts.ExperienceAnalysis, cfg.ExperienceAnalysis, DefaultUserPrompts.ExperienceAnalysis)
	case "projectsAnalysis":
		return resolvePrompt(loaded.UserPrompts.ProjectsAnalysis, cfg.ProjectsAnalysis, DefaultUserPrompts.ProjectsAnalysis)
	case "educationAnalysis":
		return resolvePrompt(loaded.UserPrompts.EducationAnalysis, cfg.EducationAnalysis, DefaultUserPrompts.EducationAnalysis)
	case "formattingAnalysis":
		return resolvePrompt(loaded.UserPrompts.FormattingAnalysis, cfg.FormattingAnalysis, DefaultUserPrompts.FormattingAnalysis)
	case "companyVerification":
		return resolvePrompt(loaded.UserPrompts.CompanyVerification, cfg.CompanyVerification, DefaultUserPrompts.CompanyVerification)
	case "recommendations":
		return resolvePrompt(loaded.UserPrompts.Recommendations, cfg.Recommendations, DefaultUserPrompts.Recommendations)
	case "queryRefinement":
		return resolvePrompt(loaded.UserPrompts.QueryRefinement, cfg.QueryRefinement, DefaultUserPrompts.QueryRefinement)
	case "jobRanking":
		return resolvePrompt(loaded.UserPrompts.JobRanking, cfg.JobRanking, DefaultUserPrompts.JobRanking)
	case "resumeOCR":
		return DefaultUserPrompts.ResumeOCR
	default:
		return ""
	}
}

// resolvePrompt selects the correct prompt string based on priority:
// file-loaded content, then inline config, then the hardcoded default.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
