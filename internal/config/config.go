package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the complete runtime configuration of the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Providers  ProvidersConfig
	Webhook    WebhookConfig
	RateLimits RateLimitConfig
	Keys       *APIKeys
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	Environment    string
	PublicBaseURL  string
	AllowedOrigins []string
	MaxUploadMB    int
}

// DatabaseConfig selects the SQL dialect and connection
type DatabaseConfig struct {
	Driver string
	URL    string
}

// StorageConfig holds the S3-compatible object storage settings
type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	UseSSL       bool
	PresignedTTL time.Duration
}

// RedisConfig is optional; an empty URL keeps rate limiting and realtime fan-out process-local
type RedisConfig struct {
	URL     string
	Channel string
}

// ProvidersConfig holds the transcription and language model provider settings
type ProvidersConfig struct {
	AssemblyAIBaseURL string
	OpenAIBaseURL     string
	OpenAIModel       string
	GeminiModel       string
	LLMProvider       string
	Timeout           time.Duration
	Retries           int
	RetryDelay        time.Duration
}

// WebhookConfig controls how provider callbacks are authenticated
type WebhookConfig struct {
	Secret string
}

// Load reads configuration from the environment (after LoadEnv) and validates it
func Load() (*Config, error) {
	keys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnvOrDefault("HOST", "0.0.0.0"),
			Port:           getEnvOrDefault("PORT", DefaultHTTPPort),
			ReadTimeout:    getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second),
			IdleTimeout:    getDurationOrDefault("SERVER_IDLE_TIMEOUT", 120*time.Second),
			Environment:    getEnvOrDefault("ENVIRONMENT", "development"),
			PublicBaseURL:  strings.TrimRight(getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:"+DefaultHTTPPort), "/"),
			AllowedOrigins: splitList(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
			MaxUploadMB:    getIntOrDefault("MAX_UPLOAD_MB", DefaultMaxUploadMB),
		},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DATABASE_DRIVER", DefaultDatabaseDriver),
			URL:    os.Getenv("DATABASE_URL"),
		},
		Storage: StorageConfig{
			Endpoint:     getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:    getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:    getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:       getEnvOrDefault("MINIO_BUCKET", DefaultMinioBucket),
			Region:       getEnvOrDefault("MINIO_REGION", "us-east-1"),
			UseSSL:       os.Getenv("MINIO_USE_SSL") == "true",
			PresignedTTL: getDurationOrDefault("MINIO_PRESIGNED_TTL", DefaultPresignedURLTTL),
		},
		Redis: RedisConfig{
			URL:     os.Getenv("REDIS_URL"),
			Channel: getEnvOrDefault("REDIS_REALTIME_CHANNEL", DefaultRealtimeChannel),
		},
		Providers: ProvidersConfig{
			AssemblyAIBaseURL: getEnvOrDefault("ASSEMBLYAI_BASE_URL", DefaultAssemblyAIBaseURL),
			OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
			OpenAIModel:       getEnvOrDefault("OPENAI_MODEL", DefaultOpenAIModel),
			GeminiModel:       getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
			LLMProvider:       strings.ToLower(getEnvOrDefault("LLM_PROVIDER", DefaultLLMProvider)),
			Timeout:           getDurationOrDefault("PROVIDER_TIMEOUT", DefaultAssemblyAITimeout),
			Retries:           getIntOrDefault("PROVIDER_RETRIES", DefaultRetries),
			RetryDelay:        getDurationOrDefault("PROVIDER_RETRY_DELAY", DefaultRetryDelay),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("WEBHOOK_SECRET"),
		},
		RateLimits: DefaultRateLimits(),
		Keys:       keys,
	}

	if cfg.Database.Driver == "sqlite3" && cfg.Database.URL == "" {
		cfg.Database.URL = DefaultSQLitePath
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.URL == "" {
		cfg.Database.URL = postgresConnectionString()
	}

	if path := os.Getenv("RATE_LIMITS_FILE"); path != "" {
		overrides, err := LoadRateLimits(path)
		if err != nil {
			return nil, err
		}
		cfg.RateLimits = cfg.RateLimits.Merge(overrides)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings the service cannot start with
func (c *Config) Validate() error {
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return err
	}
	if err := ValidateURL(c.Server.PublicBaseURL, "public base"); err != nil {
		return err
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (expected postgres or sqlite3)", c.Database.Driver)
	}
	switch c.Providers.LLMProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q (expected openai or gemini)", c.Providers.LLMProvider)
	}
	if err := ValidateURL(c.Providers.AssemblyAIBaseURL, "AssemblyAI"); err != nil {
		return err
	}
	if err := ValidateProviderConfig(c.Providers.Timeout, c.Providers.Retries, c.Providers.RetryDelay, "provider"); err != nil {
		return err
	}
	for name, tier := range c.RateLimits {
		if err := ValidateRateLimit(tier.Limit, tier.Window, name); err != nil {
			return err
		}
	}
	return nil
}

// TranscriptionEnabled reports whether a transcription provider key is configured
func (c *Config) TranscriptionEnabled() bool {
	return c.Keys != nil && c.Keys.AssemblyAI != ""
}

// SummarizationEnabled reports whether the selected language model provider has a key
func (c *Config) SummarizationEnabled() bool {
	if c.Keys == nil {
		return false
	}
	if c.Providers.LLMProvider == "gemini" {
		return c.Keys.Gemini != ""
	}
	return c.Keys.OpenAI != ""
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// postgresConnectionString builds a DSN from discrete DB_* variables
func postgresConnectionString() string {
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "postgres")
	sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
