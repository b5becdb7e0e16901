package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rate limit tier names, one independent quota per endpoint class
const (
	TierPublicComments  = "public_comments"
	TierPublicNotes     = "public_notes"
	TierPublicShare     = "public_share"
	TierMeetingMutation = "meeting_mutation"
	TierUpload          = "upload"
	TierTranscription   = "transcription"
)

// RateLimitTier is a fixed window quota
type RateLimitTier struct {
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
}

// RateLimitConfig maps tier name to its quota
type RateLimitConfig map[string]RateLimitTier

// DefaultRateLimits returns the built-in quotas
func DefaultRateLimits() RateLimitConfig {
	return RateLimitConfig{
		TierPublicComments:  {Limit: 30, Window: time.Minute},
		TierPublicNotes:     {Limit: 60, Window: time.Minute},
		TierPublicShare:     {Limit: 100, Window: time.Minute},
		TierMeetingMutation: {Limit: 60, Window: time.Minute},
		TierUpload:          {Limit: 10, Window: time.Hour},
		TierTranscription:   {Limit: 20, Window: time.Hour},
	}
}

// Merge returns a copy of c with the tiers present in overrides replaced
func (c RateLimitConfig) Merge(overrides RateLimitConfig) RateLimitConfig {
	merged := make(RateLimitConfig, len(c))
	for name, tier := range c {
		merged[name] = tier
	}
	for name, tier := range overrides {
		merged[name] = tier
	}
	return merged
}

type rateLimitFile struct {
	RateLimits RateLimitConfig `yaml:"rate_limits"`
}

// LoadRateLimits reads tier overrides from a YAML file:
//
//	rate_limits:
//	  upload: {limit: 5, window: 1h}
func LoadRateLimits(path string) (RateLimitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate limit file %s: %w", path, err)
	}

	var file rateLimitFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rate limit file %s: %w", path, err)
	}
	return file.RateLimits, nil
}
