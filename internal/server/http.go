package server

import (
	"time"

	"github.com/jaiwin14/JobnexusAI/internal/config"
	jobnexusErrors "github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/notify"
)

// ChatRequest represents the request body for the chat endpoint
type ChatRequest struct {
	Message  string        `json:"message"`
	History  []ChatTurn    `json:"history,omitempty"`
	Document string        `json:"document,omitempty"`
}

// ChatTurn is one prior message in a chat request
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the chat endpoint's reply envelope
type ChatResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// WebSocket hub for analysis progress streaming
	Hub *notify.Hub

	// Prompt hot reload
	PromptWatcher *config.PromptWatcher

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Logger
	Logger *jobnexusErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *jobnexusErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *LimiterManager
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewLimiterManager(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		Hub:            notify.NewHub(&appCfg.Server.WebSocket, logger),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
