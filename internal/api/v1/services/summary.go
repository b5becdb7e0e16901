package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/repository"
)

// SummaryServiceImpl implements SummaryService
type SummaryServiceImpl struct {
	store   repository.Store
	llm     provider.LanguageModel
	events  *EventPublisher
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSummaryService creates a new summary service; a nil llm disables summarization
func NewSummaryService(
	store repository.Store,
	llm provider.LanguageModel,
	events *EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) SummaryService {
	return &SummaryServiceImpl{
		store:   store,
		llm:     llm,
		events:  events,
		metrics: m,
		logger:  logger.Named("summary"),
	}
}

// Enabled reports whether a language model is configured
func (s *SummaryServiceImpl) Enabled() bool {
	return s.llm != nil
}

// Summarize summarizes one of the caller's meetings
func (s *SummaryServiceImpl) Summarize(ctx context.Context, userID, meetingID string) (*model.Meeting, error) {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, m)
}

// SummarizeMeeting summarizes a meeting on behalf of the service itself
func (s *SummaryServiceImpl) SummarizeMeeting(ctx context.Context, meetingID string) error {
	m, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		return errors.FromStore(err, "meeting")
	}
	_, err = s.summarize(ctx, m)
	return err
}

func (s *SummaryServiceImpl) summarize(ctx context.Context, m *model.Meeting) (*model.Meeting, error) {
	if !m.HasTranscript() {
		return nil, errors.NewBadRequestError(errors.CodeNoTranscript, "Meeting has no transcript to summarize")
	}
	if s.llm == nil {
		return nil, errors.NewServiceUnavailableError("Summarization is not configured")
	}

	started := time.Now()
	result, err := s.llm.Summarize(ctx, *m.Transcript)
	s.observe("summarize", started, err)
	if err != nil {
		s.logger.Error("Summarization failed",
			zap.String("meeting_id", m.ID),
			zap.String("provider", s.llm.Name()),
			zap.Error(err),
		)
		return nil, errors.NewProcessingError(errors.CodeSummarizationError, "Failed to summarize meeting")
	}

	summary := result.Summary
	if err := s.store.SaveSummary(ctx, m.ID, &summary, result.ActionItems); err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	updated, err := s.store.GetMeeting(ctx, m.ID)
	if err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	s.events.Meeting(ctx, realtime.EventUpdate, updated, m)

	s.logger.Info("Meeting summarized",
		zap.String("meeting_id", m.ID),
		zap.Int("action_items", len(result.ActionItems)),
	)
	return updated, nil
}

func (s *SummaryServiceImpl) observe(operation string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.Summarizations.WithLabelValues(s.llm.Name(), outcome).Inc()
	s.metrics.ObserveProvider(s.llm.Name(), operation, started, err)
}
