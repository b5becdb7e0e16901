package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/repository"
)

// TranslationServiceImpl implements TranslationService
type TranslationServiceImpl struct {
	store   repository.Store
	llm     provider.LanguageModel
	events  *EventPublisher
	metrics *metrics.Metrics
	clock   clock.Clock
	logger  *zap.Logger
}

// NewTranslationService creates a new translation service; a nil llm disables translation
func NewTranslationService(
	store repository.Store,
	llm provider.LanguageModel,
	events *EventPublisher,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *zap.Logger,
) TranslationService {
	return &TranslationServiceImpl{
		store:   store,
		llm:     llm,
		events:  events,
		metrics: m,
		clock:   clk,
		logger:  logger.Named("translation"),
	}
}

// GetTranslation returns a cached translation
func (s *TranslationServiceImpl) GetTranslation(ctx context.Context, userID, meetingID, language string) (*dto.TranslationResponse, error) {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	language = normalizeLanguage(language)
	cached, ok := m.Translations[language]
	if !ok {
		return nil, errors.NewNotFoundError("translation")
	}
	return translationResponse(language, cached, true), nil
}

// Translate translates the summary and action items, reusing the cache unless forced
func (s *TranslationServiceImpl) Translate(ctx context.Context, userID, meetingID string, req *dto.TranslateRequest) (*dto.TranslationResponse, error) {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if !m.HasSummary() {
		return nil, errors.NewBadRequestError(errors.CodeNoSummary, "Meeting has no summary to translate")
	}
	language := normalizeLanguage(req.Language)
	if cached, ok := m.Translations[language]; ok && !req.Force {
		return translationResponse(language, cached, true), nil
	}
	if s.llm == nil {
		return nil, errors.NewServiceUnavailableError("Translation is not configured")
	}

	started := time.Now()
	result, err := s.llm.Translate(ctx, language, m.Summary, m.ActionItems)
	if s.metrics != nil {
		s.metrics.ObserveProvider(s.llm.Name(), "translate", started, err)
	}
	if err != nil {
		s.logger.Error("Translation failed",
			zap.String("meeting_id", meetingID),
			zap.String("language", language),
			zap.Error(err),
		)
		return nil, errors.NewProcessingError(errors.CodeTranslationError, "Failed to translate meeting")
	}

	summary := result.Summary
	translation := model.Translation{
		Summary:      &summary,
		ActionItems:  provider.MergeCompletion(m.ActionItems, result.ActionItems),
		TranslatedAt: s.clock.Now().UTC(),
	}
	if err := s.store.SaveTranslation(ctx, meetingID, language, translation); err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	if updated, err := s.store.GetMeeting(ctx, meetingID); err == nil {
		s.events.Meeting(ctx, realtime.EventUpdate, updated, m)
	}
	return translationResponse(language, translation, false), nil
}

func translationResponse(language string, t model.Translation, cached bool) *dto.TranslationResponse {
	items := t.ActionItems
	if items == nil {
		items = []model.ActionItem{}
	}
	return &dto.TranslationResponse{
		Language:     language,
		Summary:      t.Summary,
		ActionItems:  items,
		TranslatedAt: t.TranslatedAt,
		Cached:       cached,
	}
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
