package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - ATS analysis operation defaults
	v.SetDefault("ai.analyze.provider", "gemini")
	v.SetDefault("ai.analyze.model", "")
	v.SetDefault("ai.analyze.timeout", 90*time.Second) // Five sequential section calls per run
	v.SetDefault("ai.analyze.apiKey", "")
	v.SetDefault("ai.analyze.maxRetries", 2)
	v.SetDefault("ai.analyze.temperature", 0.2) // Low temperature for consistent ratings
	v.SetDefault("ai.analyze.useSystemPrompts", true)

	// AI Configuration - Job search operation defaults
	v.SetDefault("ai.jobs.provider", "gemini")
	v.SetDefault("ai.jobs.model", "")
	v.SetDefault("ai.jobs.timeout", 45*time.Second)
	v.SetDefault("ai.jobs.apiKey", "")
	v.SetDefault("ai.jobs.maxRetries", 2)
	v.SetDefault("ai.jobs.temperature", 0.1) // Structured query output needs determinism
	v.SetDefault("ai.jobs.useSystemPrompts", true)

	// AI Configuration - Career chat operation defaults
	v.SetDefault("ai.chat.provider", "gemini")
	v.SetDefault("ai.chat.model", "")
	v.SetDefault("ai.chat.timeout", 60*time.Second)
	v.SetDefault("ai.chat.apiKey", "")
	v.SetDefault("ai.chat.maxRetries", 3)
	v.SetDefault("ai.chat.temperature", 0.7) // Conversational tone
	v.SetDefault("ai.chat.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.analyze.circuitBreaker.enabled", true)
	v.SetDefault("ai.analyze.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.analyze.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.analyze.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.analyze.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.analyze.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.jobs.circuitBreaker.enabled", true)
	v.SetDefault("ai.jobs.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.jobs.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.jobs.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.jobs.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.jobs.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.chat.circuitBreaker.enabled", true)
	v.SetDefault("ai.chat.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.chat.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.chat.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.chat.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.chat.circuitBreaker.failureThreshold", 0.6)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 120*time.Second) // Analysis runs hold the response open
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	// WebSocket progress stream defaults
	v.SetDefault("server.webSocket.allowedOrigins", []string{})
	v.SetDefault("server.webSocket.writeTimeout", 10*time.Second)
	v.SetDefault("server.webSocket.pingInterval", 30*time.Second)
	v.SetDefault("server.webSocket.sendBufferSize", 16)
	v.SetDefault("server.webSocket.readBufferSize", 1024)
	v.SetDefault("server.webSocket.writeBufferSize", 1024)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxUploadSize", 10*1024*1024) // 10MB
	v.SetDefault("app.linkProbeTimeout", 5*time.Second)
	v.SetDefault("app.chatHistoryLimit", 10)
	v.SetDefault("app.recommendationsMax", 7)

	// Job Search Configuration
	v.SetDefault("jobSearch.rapidApiKey", "")
	v.SetDefault("jobSearch.requestTimeout", 15*time.Second)
	v.SetDefault("jobSearch.maxResults", 15)
	v.SetDefault("jobSearch.rankingInput", 8)
	v.SetDefault("jobSearch.rankingOutput", 10)

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.rapidApiKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "jobnexus")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackConnections", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
