package config

import "time"

// Provider default configuration constants
const (
	DefaultAssemblyAIBaseURL = "https://api.assemblyai.com"
	DefaultAssemblyAITimeout = 60 * time.Second

	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOpenAITimeout = 120 * time.Second
	DefaultGeminiModel   = "gemini-2.0-flash"

	DefaultLLMProvider = "openai"

	// Retry defaults
	DefaultRetries          = 3
	DefaultRetryDelay       = time.Second
	DefaultRetryMaxDelay    = 10 * time.Second
	DefaultRetryMultiplier  = 2.0
	DefaultPollInterval     = 5 * time.Second
	DefaultShareLinkTTL     = 7 * 24 * time.Hour
	DefaultMaxUploadMB      = 500
	DefaultPresignedURLTTL  = 12 * time.Hour
	DefaultRateLimitSweep   = time.Minute
	DefaultHTTPPort         = "8080"
	DefaultMinioBucket      = "meeting-audio"
	DefaultDatabaseDriver   = "postgres"
	DefaultSQLitePath       = "data/meetingmind.db"
	DefaultRealtimeChannel  = "realtime:events"
	DefaultRateLimitKeyRoot = "ratelimit"
)

// ProviderDefaults holds the default client settings for a provider
type ProviderDefaults struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	Model      string
}

// GetProviderDefaults returns default configuration for a given provider type
func GetProviderDefaults(providerType string) ProviderDefaults {
	switch providerType {
	case "assemblyai":
		return ProviderDefaults{
			Timeout:    DefaultAssemblyAITimeout,
			Retries:    DefaultRetries,
			RetryDelay: DefaultRetryDelay,
		}
	case "openai":
		return ProviderDefaults{
			Timeout:    DefaultOpenAITimeout,
			Retries:    DefaultRetries,
			RetryDelay: DefaultRetryDelay,
			Model:      DefaultOpenAIModel,
		}
	case "gemini":
		return ProviderDefaults{
			Timeout:    DefaultOpenAITimeout,
			Retries:    DefaultRetries,
			RetryDelay: DefaultRetryDelay,
			Model:      DefaultGeminiModel,
		}
	default:
		return ProviderDefaults{
			Timeout:    60 * time.Second,
			Retries:    2,
			RetryDelay: time.Second,
		}
	}
}
