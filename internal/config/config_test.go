package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "PUBLIC_BASE_URL", "DATABASE_DRIVER", "DATABASE_URL", "LLM_PROVIDER",
		"ASSEMBLYAI_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "RATE_LIMITS_FILE",
		"MAX_UPLOAD_MB", "ALLOWED_ORIGINS", "WEBHOOK_SECRET", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPPort, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.URL, "host=localhost")
	assert.Equal(t, DefaultMinioBucket, cfg.Storage.Bucket)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DefaultMaxUploadMB, cfg.Server.MaxUploadMB)
	assert.False(t, cfg.TranscriptionEnabled())
	assert.False(t, cfg.SummarizationEnabled())
	assert.Equal(t, DefaultRateLimits(), cfg.RateLimits)
}

func TestLoadSQLiteDefaultsPath(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DATABASE_DRIVER", "sqlite3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSQLitePath, cfg.Database.URL)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		errorContains string
	}{
		{"bad port", map[string]string{"PORT": "99999"}, "port invalid"},
		{"bad driver", map[string]string{"DATABASE_DRIVER": "mysql"}, "unsupported DATABASE_DRIVER"},
		{"bad llm provider", map[string]string{"LLM_PROVIDER": "claude"}, "unsupported LLM_PROVIDER"},
		{"bad public url", map[string]string{"PUBLIC_BASE_URL": "example.com"}, "must start with http"},
		{"bad upload size", map[string]string{"MAX_UPLOAD_MB": "0"}, "MAX_UPLOAD_MB"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestFeatureFlags(t *testing.T) {
	cfg := &Config{
		Providers: ProvidersConfig{LLMProvider: "gemini"},
		Keys:      &APIKeys{AssemblyAI: "key", OpenAI: "sk-key"},
	}
	assert.True(t, cfg.TranscriptionEnabled())
	assert.False(t, cfg.SummarizationEnabled(), "gemini selected without a gemini key")

	cfg.Providers.LLMProvider = "openai"
	assert.True(t, cfg.SummarizationEnabled())
}

func TestLoadRateLimitOverrides(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "limits.yaml")
	content := `rate_limits:
  upload:
    limit: 5
    window: 30m
  public_notes:
    limit: 10
    window: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("RATE_LIMITS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, RateLimitTier{Limit: 5, Window: 30 * time.Minute}, cfg.RateLimits[TierUpload])
	assert.Equal(t, RateLimitTier{Limit: 10, Window: 10 * time.Second}, cfg.RateLimits[TierPublicNotes])
	assert.Equal(t, DefaultRateLimits()[TierTranscription], cfg.RateLimits[TierTranscription])
}

func TestLoadRateLimitsMissingFile(t *testing.T) {
	_, err := LoadRateLimits(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rate limit file")
}
