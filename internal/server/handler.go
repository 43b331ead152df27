package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	"github.com/jaiwin14/JobnexusAI/internal/ats"
	"github.com/jaiwin14/JobnexusAI/internal/extract"
	"github.com/jaiwin14/JobnexusAI/internal/jobs"
	"github.com/jaiwin14/JobnexusAI/internal/notify"
	"github.com/jaiwin14/JobnexusAI/internal/observability"
	"github.com/jaiwin14/JobnexusAI/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the resume analysis handler with observability.
// The request is a multipart form with a "resume" file and an optional
// "connectionId" field naming a websocket connection for progress streaming.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobnexus.api")
		ctx, span := tracer.Start(ctx, "api.ats.analyze")
		defer span.End()

		doc, err := parseResumeUpload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume upload", err.Error(), http.StatusBadRequest)
			return
		}

		apiKey := apiKeyFromContext(ctx)
		connectionID := r.FormValue("connectionId")
		if connectionID != "" && !s.Hub.Has(connectionID, apiKey) {
			err := fmt.Errorf("unknown connection id")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid connectionId", "connectionId does not match an open websocket for this API key", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.media_type", doc.MediaType),
			attribute.Int("request.file_bytes", len(doc.Data)),
			attribute.Bool("request.streaming", connectionID != ""),
			attribute.String("operation", "analyze"),
		)

		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, "analyze", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		extractor := extract.New(aiService.Provider, s.Logger)
		resumeText, err := extractor.Text(ctx, doc)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			s.publishAnalysisError(connectionID, apiKey, err)
			writeErrorResponse(w, "Failed to extract resume text", err.Error(), http.StatusBadRequest)
			return
		}

		links := ats.NewLinkValidator(s.AppConfig.App.LinkProbeTimeout, s.Logger)
		pipeline := ats.NewPipeline(aiService.Provider, links, s.AppConfig.App.RecommendationsMax, s.Logger)

		progress := s.progressPublisher(connectionID, apiKey)

		metrics := om.GetMetrics()
		report, err := pipeline.Analyze(ctx, resumeText, progress)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om,
				attribute.String("error", err.Error()))
			s.publishAnalysisError(connectionID, apiKey, err)
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.Int("ats.score", report.ATSScore),
			attribute.Int("recommendations", len(report.Recommendations)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", report.ATSScore),
		)

		if connectionID != "" {
			_ = s.Hub.Publish(connectionID, apiKey, notify.Message{
				Type: notify.TypeAnalysisComplete,
				Data: report,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// progressPublisher adapts pipeline events into websocket frames. Returns nil
// when no connection was requested so the pipeline skips event emission.
func (s *Server) progressPublisher(connectionID, apiKey string) ats.ProgressFunc {
	if connectionID == "" {
		return nil
	}
	return func(e ats.ProgressEvent) {
		_ = s.Hub.Publish(connectionID, apiKey, notify.Message{
			Type:   notify.TypeStepUpdate,
			Step:   e.Step,
			Status: e.Status,
		})
	}
}

func (s *Server) publishAnalysisError(connectionID, apiKey string, err error) {
	if connectionID == "" {
		return
	}
	_ = s.Hub.Publish(connectionID, apiKey, notify.Message{
		Type:  notify.TypeAnalysisError,
		Error: err.Error(),
	})
}

// parseResumeUpload reads the multipart resume file. The media type comes
// from the part header, falling back to the file extension.
func parseResumeUpload(r *http.Request) (types.ResumeDocument, error) {
	file, header, err := r.FormFile("resume")
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("resume file is required: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to read resume file: %w", err)
	}
	if len(data) == 0 {
		return types.ResumeDocument{}, fmt.Errorf("resume file is empty")
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mediaTypeFromExtension(header.Filename)
	}

	return types.ResumeDocument{
		Data:      data,
		MediaType: mediaType,
		FileName:  header.Filename,
	}, nil
}

func mediaTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

// createJobSearchHandler wraps the job search handler with observability
func (s *Server) createJobSearchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobnexus.api")
		ctx, span := tracer.Start(ctx, "api.jobs.search")
		defer span.End()

		var req types.JobSearchInput
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobTitle) == "" || strings.TrimSpace(req.WorkMode) == "" || strings.TrimSpace(req.Location) == "" {
			err := fmt.Errorf("missing search criteria")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing required fields", "jobTitle, workMode, and location are required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.job_title", req.JobTitle),
			attribute.String("request.work_mode", req.WorkMode),
			attribute.String("request.location", req.Location),
			attribute.String("operation", "jobs"),
		)

		jobsConfig := s.AppConfig.GetJobsConfig()
		aiService, err := ai.NewService(&jobsConfig, "jobs", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		searchService := jobs.NewService(aiService.Provider, &s.AppConfig.JobSearch, s.Logger)

		metrics := om.GetMetrics()
		result, err := searchService.Search(ctx, req)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "jobs_searched", false, om)
			writeErrorResponse(w, "Job search failed", err.Error(), http.StatusBadRequest)
			return
		}

		metrics.RecordBusinessMetric(ctx, "jobs_searched", true, om,
			attribute.Int("results", result.TotalResults),
			attribute.Bool("found", result.Success))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("results", result.TotalResults),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createChatHandler wraps the career chat handler with observability
func (s *Server) createChatHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobnexus.api")
		ctx, span := tracer.Start(ctx, "api.chat")
		defer span.End()

		var req ChatRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			err := fmt.Errorf("missing message")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing message", "message field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.message_length", len(req.Message)),
			attribute.Int("request.history_turns", len(req.History)),
			attribute.Bool("request.has_document", req.Document != ""),
			attribute.String("operation", "chat"),
		)

		chatConfig := s.AppConfig.GetChatConfig()
		aiService, err := ai.NewService(&chatConfig, "chat", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		input := types.ChatInput{
			Message:  req.Message,
			Document: req.Document,
		}
		for _, turn := range req.History {
			input.History = append(input.History, types.ChatMessage{Role: turn.Role, Content: turn.Content})
		}

		metrics := om.GetMetrics()
		var reply string
		err = metrics.TrackAIOperationWithTokens(ctx, "chat", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.Chat(ctx, input, s.AppConfig.App.ChatHistoryLimit)
			reply = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "chat_replied", false, om)
			writeErrorResponse(w, "Chat failed", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "chat_replied", true, om,
			attribute.Int("reply_length", len(reply)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.reply_length", len(reply)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ChatResponse{Reply: reply}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createWebSocketHandler registers a progress streaming connection bound to
// the caller's API key. HandleConnection blocks until the client disconnects.
func (s *Server) createWebSocketHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := om.GetMetrics()
		metrics.RecordWSConnectionChange(r.Context(), 1, om)
		defer metrics.RecordWSConnectionChange(r.Context(), -1, om)

		s.Hub.HandleConnection(w, r, apiKeyFromContext(r.Context()))
	}
}

// locationsHandler serves the static supported-locations list
func (s *Server) locationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"locations": jobs.SupportedLocations()})
}

// jobTitlesHandler serves the static popular-titles list
func (s *Server) jobTitlesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"jobTitles": jobs.PopularJobTitles()})
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
