package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateAPIKey(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		keyType string
		wantErr bool
	}{
		{"openai ok", "sk-1234567890abcdef1234", "OpenAI", false},
		{"openai wrong prefix", "pk-1234567890abcdef1234", "OpenAI", true},
		{"openai too short", "sk-123", "OpenAI", true},
		{"gemini ok", "AIzaSyD-1234567890abcdefghijklmno", "Gemini", false},
		{"gemini wrong prefix", "BIzaSyD-1234567890abcdefghijklmno", "Gemini", true},
		{"assemblyai ok", "0123456789abcdef0123456789abcdef", "AssemblyAI", false},
		{"assemblyai short", "0123", "AssemblyAI", true},
		{"empty", "", "OpenAI", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAPIKey(tc.key, tc.keyType)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8080", "server"))
	assert.Error(t, ValidatePort("", "server"))
	assert.Error(t, ValidatePort("0", "server"))
	assert.Error(t, ValidatePort("http", "server"))
	assert.Error(t, ValidatePort("70000", "server"))
}

func TestValidateRateLimit(t *testing.T) {
	assert.NoError(t, ValidateRateLimit(10, time.Minute, "upload"))
	assert.Error(t, ValidateRateLimit(0, time.Minute, "upload"))
	assert.Error(t, ValidateRateLimit(10, 0, "upload"))
	assert.Error(t, ValidateRateLimit(10, 48*time.Hour, "upload"))
}

func TestValidateProviderConfig(t *testing.T) {
	assert.NoError(t, ValidateProviderConfig(30*time.Second, 3, time.Second, "assemblyai"))
	assert.Error(t, ValidateProviderConfig(0, 3, time.Second, "assemblyai"))
	assert.Error(t, ValidateProviderConfig(30*time.Second, -1, time.Second, "assemblyai"))
}

func TestGetProviderDefaults(t *testing.T) {
	d := GetProviderDefaults("openai")
	assert.Equal(t, DefaultOpenAIModel, d.Model)
	assert.Equal(t, DefaultOpenAITimeout, d.Timeout)

	d = GetProviderDefaults("unknown")
	assert.Equal(t, 2, d.Retries)
}
