package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (JOBNEXUS_AI_APIKEY, etc.)
// 4. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	JobSearch     JobSearchConfig     `mapstructure:"jobSearch"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds AI service configuration
type AIConfig struct {
	// Global/fallback configuration
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig  `mapstructure:"customPrompts"`

	// Operation-specific configurations
	Analyze OperationAIConfig `mapstructure:"analyze"`
	Jobs    OperationAIConfig `mapstructure:"jobs"`
	Chat    OperationAIConfig `mapstructure:"chat"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for specific operations
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `mapstructure:"systemPrompts"`
	UserPrompts   UserPrompts   `mapstructure:"userPrompts"`
}

// SystemPrompts contains system-level instructions
type SystemPrompts struct {
	SectionAnalysis         string `mapstructure:"sectionAnalysis"`
	SectionAnalysisFile     string `mapstructure:"sectionAnalysisFile"`
	CompanyVerification     string `mapstructure:"companyVerification"`
	CompanyVerificationFile string `mapstructure:"companyVerificationFile"`
	Recommendations         string `mapstructure:"recommendations"`
	RecommendationsFile     string `mapstructure:"recommendationsFile"`
	QueryRefinement         string `mapstructure:"queryRefinement"`
	QueryRefinementFile     string `mapstructure:"queryRefinementFile"`
	JobRanking              string `mapstructure:"jobRanking"`
	JobRankingFile          string `mapstructure:"jobRankingFile"`
	CareerChat              string `mapstructure:"careerChat"`
	CareerChatFile          string `mapstructure:"careerChatFile"`
}

// UserPrompts contains user-level prompt templates
type UserPrompts struct {
	SkillsAnalysis          string `mapstructure:"skillsAnalysis"`
	SkillsAnalysisFile      string `mapstructure:"skillsAnalysisFile"`
	ExperienceAnalysis      string `mapstructure:"experienceAnalysis"`
	ExperienceAnalysisFile  string `mapstructure:"experienceAnalysisFile"`
	ProjectsAnalysis        string `mapstructure:"projectsAnalysis"`
	ProjectsAnalysisFile    string `mapstructure:"projectsAnalysisFile"`
	EducationAnalysis       string `mapstructure:"educationAnalysis"`
	EducationAnalysisFile   string `mapstructure:"educationAnalysisFile"`
	FormattingAnalysis      string `mapstructure:"formattingAnalysis"`
	FormattingAnalysisFile  string `mapstructure:"formattingAnalysisFile"`
	CompanyVerification     string `mapstructure:"companyVerification"`
	CompanyVerificationFile string `mapstructure:"companyVerificationFile"`
	Recommendations         string `mapstructure:"recommendations"`
	RecommendationsFile     string `mapstructure:"recommendationsFile"`
	QueryRefinement         string `mapstructure:"queryRefinement"`
	QueryRefinementFile     string `mapstructure:"queryRefinementFile"`
	JobRanking              string `mapstructure:"jobRanking"`
	JobRankingFile          string `mapstructure:"jobRankingFile"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// TLS Configuration
	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`

	// WebSocket Configuration
	WebSocket WebSocketConfig `mapstructure:"webSocket"`
}

// TLSConfig holds TLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // TLS mode: "disabled", "server"
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)

	// Certificate content (used when loaded from Vault instead of files)
	CertContent string `mapstructure:"certContent"` // Server certificate content (PEM)
	KeyContent  string `mapstructure:"keyContent"`  // Server private key content (PEM)

	MinVersion string `mapstructure:"minVersion"` // Minimum TLS version: "1.2", "1.3"
}

// WebSocketConfig holds progress stream configuration
type WebSocketConfig struct {
	AllowedOrigins  []string      `mapstructure:"allowedOrigins"`  // Origins accepted during upgrade; empty allows same-host only
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`    // Per-message write deadline
	PingInterval    time.Duration `mapstructure:"pingInterval"`    // Keepalive ping interval
	SendBufferSize  int           `mapstructure:"sendBufferSize"`  // Buffered events per connection
	ReadBufferSize  int           `mapstructure:"readBufferSize"`  // Upgrader read buffer
	WriteBufferSize int           `mapstructure:"writeBufferSize"` // Upgrader write buffer
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int  `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int  `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel           string        `mapstructure:"logLevel"`
	DefaultFormat      string        `mapstructure:"defaultFormat"`
	SupportedFormats   []string      `mapstructure:"supportedFormats"`
	MaxUploadSize      int64         `mapstructure:"maxUploadSize"`      // Resume upload limit in bytes
	LinkProbeTimeout   time.Duration `mapstructure:"linkProbeTimeout"`   // Per-link HEAD probe timeout
	ChatHistoryLimit   int           `mapstructure:"chatHistoryLimit"`   // Turns of history sent to the model
	RecommendationsMax int           `mapstructure:"recommendationsMax"` // Cap on recommendations per report
}

// JobSearchConfig holds external job provider configuration
type JobSearchConfig struct {
	RapidAPIKey    string        `mapstructure:"rapidApiKey"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"` // Per-provider request timeout
	MaxResults     int           `mapstructure:"maxResults"`     // Cap after dedupe
	RankingInput   int           `mapstructure:"rankingInput"`   // Jobs handed to the ranking model
	RankingOutput  int           `mapstructure:"rankingOutput"`  // Jobs returned after fallback ranking
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig holds fine-grained custom metrics configuration
type CustomMetricsConfig struct {
	AIOperations    AIOperationsMetricsConfig   `mapstructure:"aiOperations"`
	BusinessMetrics BusinessMetricsConfig       `mapstructure:"businessMetrics"`
	Infrastructure  InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// AIOperationsMetricsConfig holds AI operation metrics configuration
type AIOperationsMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackDuration   bool `mapstructure:"trackDuration"`
	TrackTokenUsage bool `mapstructure:"trackTokenUsage"`
	TrackModelInfo  bool `mapstructure:"trackModelInfo"`
}

// BusinessMetricsConfig holds business metrics configuration
type BusinessMetricsConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	TrackSuccessRates bool `mapstructure:"trackSuccessRates"`
	TrackContentSizes bool `mapstructure:"trackContentSizes"`
}

// InfrastructureMetricsConfig holds infrastructure metrics configuration
type InfrastructureMetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	TrackRateLimits  bool `mapstructure:"trackRateLimits"`
	TrackConnections bool `mapstructure:"trackConnections"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	AIModelCheckTimeout time.Duration `mapstructure:"aiModelCheckTimeout"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("JOBNEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'JOBNEXUS'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/jobnexus/")
	v.AddConfigPath("$HOME/.jobnexus")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/jobnexus/, $HOME/.jobnexus, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	// Apply fallback logic
	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate prompt files before attempting to load them
	if err := config.validatePromptFiles(); err != nil {
		return nil, fmt.Errorf("prompt file validation failed: %w", err)
	}

	// Load custom prompts from external files
	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI API key is required (set JOBNEXUS_AI_APIKEY environment variable)")
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.App.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	if c.App.LinkProbeTimeout <= 0 {
		return fmt.Errorf("link probe timeout must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	// Validate TLS configuration
	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAnalyzeConfig returns the AI configuration for ATS analysis operations
// with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze

	c.applyOperationDefaults(&config)

	// Analysis prompt fallbacks from the global prompt config
	if config.CustomPrompts.SystemPrompts.SectionAnalysis == "" {
		config.CustomPrompts.SystemPrompts.SectionAnalysis = c.AI.CustomPrompts.SystemPrompts.SectionAnalysis
	}
	if config.CustomPrompts.SystemPrompts.CompanyVerification == "" {
		config.CustomPrompts.SystemPrompts.CompanyVerification = c.AI.CustomPrompts.SystemPrompts.CompanyVerification
	}
	if config.CustomPrompts.SystemPrompts.Recommendations == "" {
		config.CustomPrompts.SystemPrompts.Recommendations = c.AI.CustomPrompts.SystemPrompts.Recommendations
	}
	if config.CustomPrompts.UserPrompts.SkillsAnalysis == "" {
		config.CustomPrompts.UserPrompts.SkillsAnalysis = c.AI.CustomPrompts.UserPrompts.SkillsAnalysis
	}
	if config.CustomPrompts.UserPrompts.ExperienceAnalysis == "" {
		config.CustomPrompts.UserPrompts.ExperienceAnalysis = c.AI.CustomPrompts.UserPrompts.ExperienceAnalysis
	}
	if config.CustomPrompts.UserPrompts.ProjectsAnalysis == "" {
		config.CustomPrompts.UserPrompts.ProjectsAnalysis = c.AI.CustomPrompts.UserPrompts.ProjectsAnalysis
	}
	if config.CustomPrompts.UserPrompts.EducationAnalysis == "" {
		config.CustomPrompts.UserPrompts.EducationAnalysis = c.AI.CustomPrompts.UserPrompts.EducationAnalysis
	}
	if config.CustomPrompts.UserPrompts.FormattingAnalysis == "" {
		config.CustomPrompts.UserPrompts.FormattingAnalysis = c.AI.CustomPrompts.UserPrompts.FormattingAnalysis
	}
	if config.CustomPrompts.UserPrompts.CompanyVerification == "" {
		config.CustomPrompts.UserPrompts.CompanyVerification = c.AI.CustomPrompts.UserPrompts.CompanyVerification
	}
	if config.CustomPrompts.UserPrompts.Recommendations == "" {
		config.CustomPrompts.UserPrompts.Recommendations = c.AI.CustomPrompts.UserPrompts.Recommendations
	}

	return config
}

// GetJobsConfig returns the AI configuration for job search operations
// with fallback to global config
func (c *Config) GetJobsConfig() OperationAIConfig {
	config := c.AI.Jobs

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.QueryRefinement == "" {
		config.CustomPrompts.SystemPrompts.QueryRefinement = c.AI.CustomPrompts.SystemPrompts.QueryRefinement
	}
	if config.CustomPrompts.SystemPrompts.JobRanking == "" {
		config.CustomPrompts.SystemPrompts.JobRanking = c.AI.CustomPrompts.SystemPrompts.JobRanking
	}
	if config.CustomPrompts.UserPrompts.QueryRefinement == "" {
		config.CustomPrompts.UserPrompts.QueryRefinement = c.AI.CustomPrompts.UserPrompts.QueryRefinement
	}
	if config.CustomPrompts.UserPrompts.JobRanking == "" {
		config.CustomPrompts.UserPrompts.JobRanking = c.AI.CustomPrompts.UserPrompts.JobRanking
	}

	return config
}

// GetChatConfig returns the AI configuration for career chat operations
// with fallback to global config
func (c *Config) GetChatConfig() OperationAIConfig {
	config := c.AI.Chat

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.CareerChat == "" {
		config.CustomPrompts.SystemPrompts.CareerChat = c.AI.CustomPrompts.SystemPrompts.CareerChat
	}

	return config
}

// GetLoadedAnalyzePrompts returns a copy of the loaded prompts for ATS analysis
func (c *Config) GetLoadedAnalyzePrompts() OperationLoadedPrompts {
	return loadedPrompts.Analyze
}

// GetLoadedJobsPrompts returns a copy of the loaded prompts for job search
func (c *Config) GetLoadedJobsPrompts() OperationLoadedPrompts {
	return loadedPrompts.Jobs
}

// GetLoadedChatPrompts returns a copy of the loaded prompts for career chat
func (c *Config) GetLoadedChatPrompts() OperationLoadedPrompts {
	return loadedPrompts.Chat
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}

// applyFallbacks applies environment variable fallbacks
func (c *Config) applyFallbacks() {
	// Parse API keys from environment variable if not set in config
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("JOBNEXUS_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
			for i, key := range c.Server.APIKeys {
				c.Server.APIKeys[i] = strings.TrimSpace(key)
			}
		}
	}

	// Legacy environment variable support for the Gemini key
	if c.AI.APIKey == "" {
		if legacy := os.Getenv("GOOGLE_API_KEY"); legacy != "" {
			c.AI.APIKey = legacy
		}
	}

	// RapidAPI key fallback
	if c.JobSearch.RapidAPIKey == "" {
		if key := os.Getenv("RAPIDAPI_KEY"); key != "" {
			c.JobSearch.RapidAPIKey = key
		}
	}

	// Set default TLS version if not specified
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}

	// Set dynamic service instance ID if not specified
	if c.Observability.ServiceInstance == "" {
		if hostname, err := os.Hostname(); err == nil {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-%s", c.Observability.ServiceName, hostname)
		} else {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-1", c.Observability.ServiceName)
		}
	}

	// Set console output based on log level if not explicitly configured
	if c.App.LogLevel == "debug" && !c.Observability.ConsoleOutput {
		c.Observability.ConsoleOutput = true
	}
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		"JOBNEXUS_AI_APIKEY",
		"JOBNEXUS_AI_PROVIDER",
		"JOBNEXUS_AI_MODEL",
		"JOBNEXUS_SERVER_PORT",
		"JOBNEXUS_SERVER_HOST",
		"JOBNEXUS_APP_LOGLEVEL",
		"JOBNEXUS_VAULT_ENABLED",
		"GOOGLE_API_KEY", // Legacy support
		"RAPIDAPI_KEY",
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Mask sensitive values
			if strings.Contains(strings.ToLower(envVar), "apikey") || strings.Contains(strings.ToLower(envVar), "key") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] AI Provider: %s", c.AI.Provider)
	log.Printf("[CONFIG] AI Model: %s", c.AI.Model)
	if c.AI.APIKey != "" {
		log.Println("[CONFIG] AI API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] AI API Key: ***NOT SET***")
	}
	if c.JobSearch.RapidAPIKey != "" {
		log.Println("[CONFIG] RapidAPI Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] RapidAPI Key: ***NOT SET***")
	}
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] TLS Mode: %s", c.Server.TLS.Mode)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	log.Println("[CONFIG] === Operation-Specific AI Configurations ===")
	log.Printf("[CONFIG] Analyze - Provider: %s, Model: %s", c.AI.Analyze.Provider, c.AI.Analyze.Model)
	log.Printf("[CONFIG] Jobs - Provider: %s, Model: %s", c.AI.Jobs.Provider, c.AI.Jobs.Model)
	log.Printf("[CONFIG] Chat - Provider: %s, Model: %s", c.AI.Chat.Provider, c.AI.Chat.Model)

	log.Println("[CONFIG] =====================================")
}

// Global configuration instance
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
