package services

import (
	"context"

	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/config"
)

// ConfigServiceImpl implements ConfigService
type ConfigServiceImpl struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	realtime bool
}

// NewConfigService creates a new config service
func NewConfigService(cfg *config.Config, m *metrics.Metrics, realtimeEnabled bool) ConfigService {
	return &ConfigServiceImpl{cfg: cfg, metrics: m, realtime: realtimeEnabled}
}

// GetConfig reports which features are usable with the configured keys
func (s *ConfigServiceImpl) GetConfig(_ context.Context) *dto.ConfigResponse {
	resp := &dto.ConfigResponse{
		TranscriptionEnabled: s.cfg.TranscriptionEnabled(),
		SummarizationEnabled: s.cfg.SummarizationEnabled(),
		MaxUploadMB:          s.cfg.Server.MaxUploadMB,
		RealtimeEnabled:      s.realtime,
	}
	if resp.SummarizationEnabled {
		resp.LLMProvider = s.cfg.Providers.LLMProvider
	}
	return resp
}

// GetProviderStats returns call counts and latency per external provider
func (s *ConfigServiceImpl) GetProviderStats(_ context.Context) *dto.ProviderStatsResponse {
	resp := &dto.ProviderStatsResponse{Providers: []metrics.ProviderSnapshot{}}
	if s.metrics != nil {
		if snap := s.metrics.Providers.Snapshot(); snap != nil {
			resp.Providers = snap
		}
	}
	return resp
}
