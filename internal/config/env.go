package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds all provider API keys loaded from environment
type APIKeys struct {
	AssemblyAI string
	OpenAI     string
	Gemini     string
}

// LoadEnv loads environment variables from the first .env file found.
// It returns the path that was loaded, or "" when none exists (variables may be set system-wide).
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetAPIKeys retrieves and validates API keys from environment variables.
// Empty keys are allowed and simply disable the matching capability.
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		AssemblyAI: strings.TrimSpace(os.Getenv("ASSEMBLYAI_API_KEY")),
		OpenAI:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OpenAI"); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: %w", err)
		}
	}
	if apiKeys.Gemini != "" {
		if err := ValidateAPIKey(apiKeys.Gemini, "Gemini"); err != nil {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: %w", err)
		}
	}
	if apiKeys.AssemblyAI != "" {
		if err := ValidateAPIKey(apiKeys.AssemblyAI, "AssemblyAI"); err != nil {
			return nil, fmt.Errorf("invalid ASSEMBLYAI_API_KEY format: %w", err)
		}
	}

	return apiKeys, nil
}

// Available lists the providers that have a key configured
func (k *APIKeys) Available() []string {
	var available []string
	if k.AssemblyAI != "" {
		available = append(available, "AssemblyAI")
	}
	if k.OpenAI != "" {
		available = append(available, "OpenAI")
	}
	if k.Gemini != "" {
		available = append(available, "Gemini")
	}
	return available
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}
