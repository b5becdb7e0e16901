package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		assemblyKey   string
		openaiKey     string
		geminiKey     string
		expectError   bool
		errorContains string
		available     []string
	}{
		{
			name:      "no keys configured",
			available: nil,
		},
		{
			name:      "valid OpenAI key",
			openaiKey: "sk-1234567890abcdef1234567890abcdef",
			available: []string{"OpenAI"},
		},
		{
			name:        "all providers",
			assemblyKey: "0123456789abcdef0123456789abcdef",
			openaiKey:   "sk-1234567890abcdef1234567890abcdef",
			geminiKey:   "AIzaTest-1234567890abcdef1234567890",
			available:   []string{"AssemblyAI", "OpenAI", "Gemini"},
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY format",
		},
		{
			name:          "invalid Gemini key format",
			geminiKey:     "not-a-gemini-key-at-all-really-long",
			expectError:   true,
			errorContains: "invalid GEMINI_API_KEY format",
		},
		{
			name:          "short AssemblyAI key",
			assemblyKey:   "short",
			expectError:   true,
			errorContains: "invalid ASSEMBLYAI_API_KEY format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ASSEMBLYAI_API_KEY", tc.assemblyKey)
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)
			t.Setenv("GEMINI_API_KEY", tc.geminiKey)

			keys, err := GetAPIKeys()
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.available, keys.Available())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path, "no .env file should be found in an empty directory")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MEETINGMIND_TEST_VAR=loaded\n"), 0o600))
	t.Setenv("MEETINGMIND_TEST_VAR", "")
	os.Unsetenv("MEETINGMIND_TEST_VAR")

	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "loaded", os.Getenv("MEETINGMIND_TEST_VAR"))
}

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot()
	require.NoError(t, err)
	assert.NotEmpty(t, root)

	_, err = os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err, "go.mod should exist in project root")
}
