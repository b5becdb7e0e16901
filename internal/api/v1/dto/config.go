package dto

import (
	"meetingmind/internal/app/metrics"
)

// ConfigResponse exposes feature availability to clients
type ConfigResponse struct {
	TranscriptionEnabled bool   `json:"transcription_enabled"`
	SummarizationEnabled bool   `json:"summarization_enabled"`
	LLMProvider          string `json:"llm_provider,omitempty"`
	MaxUploadMB          int    `json:"max_upload_mb"`
	RealtimeEnabled      bool   `json:"realtime_enabled"`
}

// ProviderStatsResponse lists call statistics per external provider
type ProviderStatsResponse struct {
	Providers []metrics.ProviderSnapshot `json:"providers"`
}
