package services

import (
	"context"
	"crypto/subtle"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/insights"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/repository"
	"meetingmind/internal/app/storage"
)

// NoSpeechPlaceholder is stored when the provider finishes with empty text
const NoSpeechPlaceholder = "[No speech detected]"

// Provider callback headers
const (
	// WebhookSecretHeader carries the shared secret
	WebhookSecretHeader = "X-Webhook-Secret"
	// WebhookMeetingHeader identifies the meeting when the callback URL has no meeting_id parameter
	WebhookMeetingHeader = "X-Meeting-ID"
)

// WebhookPath is where the provider posts completion callbacks
const WebhookPath = "/api/v1/webhooks/assemblyai"

// TranscriptionSettings configures job submission
type TranscriptionSettings struct {
	PublicBaseURL  string
	WebhookSecret  string
	PresignedTTL   time.Duration
	SummaryTimeout time.Duration
}

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	store       repository.Store
	transcriber provider.Transcriber
	storage     storage.ObjectStorage
	summaries   SummaryService
	events      *EventPublisher
	metrics     *metrics.Metrics
	settings    TranscriptionSettings
	run         Runner
	clock       clock.Clock
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service; a nil transcriber disables it
func NewTranscriptionService(
	store repository.Store,
	transcriber provider.Transcriber,
	objects storage.ObjectStorage,
	summaries SummaryService,
	events *EventPublisher,
	m *metrics.Metrics,
	settings TranscriptionSettings,
	run Runner,
	clk clock.Clock,
	logger *zap.Logger,
) TranscriptionService {
	if settings.SummaryTimeout <= 0 {
		settings.SummaryTimeout = 2 * time.Minute
	}
	if run == nil {
		run = Async
	}
	return &TranscriptionServiceImpl{
		store:       store,
		transcriber: transcriber,
		storage:     objects,
		summaries:   summaries,
		events:      events,
		metrics:     m,
		settings:    settings,
		run:         run,
		clock:       clk,
		logger:      logger.Named("transcription"),
	}
}

// StartTranscription submits the meeting's recording and records the job id.
// Only one job may be outstanding: a second start, or the loser of a concurrent race,
// gets ALREADY_TRANSCRIBING.
func (s *TranscriptionServiceImpl) StartTranscription(ctx context.Context, userID, meetingID string) (*dto.TranscriptionStatusResponse, error) {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	if !m.HasAudio() {
		return nil, errors.NewBadRequestError(errors.CodeNoAudio, "Meeting has no audio to transcribe")
	}
	if m.HasTranscript() {
		return nil, errors.NewValidationError("Meeting is already transcribed", map[string]string{
			"meeting_id": "already transcribed",
		})
	}
	if m.HasJob() {
		return nil, errors.NewConflictError(errors.CodeAlreadyTranscribing, "Transcription already in progress")
	}
	if s.transcriber == nil {
		return nil, errors.NewServiceUnavailableError("Transcription is not configured")
	}

	audioURL, err := s.storage.PresignedGet(ctx, m.AudioURL, s.settings.PresignedTTL)
	if err != nil {
		s.logger.Error("Failed to presign recording", zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, errors.NewProcessingError(errors.CodeTranscriptionError, "Failed to prepare recording")
	}

	req := provider.SubmitRequest{
		AudioURL:          audioURL,
		WebhookURL:        s.webhookURL(meetingID),
		SpeakerLabels:     true,
		LanguageDetection: true,
		SentimentAnalysis: true,
	}
	if s.settings.WebhookSecret != "" {
		req.WebhookAuthHeader = WebhookSecretHeader
		req.WebhookAuthValue = s.settings.WebhookSecret
	}

	started := time.Now()
	job, err := s.transcriber.Submit(ctx, req)
	s.observeProvider("submit", started, err)
	if err != nil {
		s.countJob("submit_failed")
		s.logger.Error("Failed to submit transcription", zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, errors.NewProcessingError(errors.CodeTranscriptionError, "Failed to start transcription")
	}

	claimed, err := s.store.ClaimTranscriptJob(ctx, meetingID, job.ID)
	if err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	if !claimed {
		s.countJob("duplicate")
		s.logger.Warn("Lost transcription start race; provider job left orphaned",
			zap.String("meeting_id", meetingID),
			zap.String("transcript_id", job.ID),
		)
		return nil, errors.NewConflictError(errors.CodeAlreadyTranscribing, "Transcription already in progress")
	}
	s.countJob("submitted")

	if updated, err := s.store.GetMeeting(ctx, meetingID); err == nil {
		s.events.Meeting(ctx, realtime.EventUpdate, updated, m)
	}

	s.logger.Info("Transcription started",
		zap.String("meeting_id", meetingID),
		zap.String("transcript_id", job.ID),
	)
	transcriptID := job.ID
	return &dto.TranscriptionStatusResponse{Status: statusFor(job.Status), TranscriptID: &transcriptID}, nil
}

// CheckStatus reports the job state, completing the meeting when the provider has finished
func (s *TranscriptionServiceImpl) CheckStatus(ctx context.Context, userID, meetingID string) (*dto.TranscriptionStatusResponse, error) {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	switch model.StatusFor(m) {
	case model.StatusCompleted:
		return &dto.TranscriptionStatusResponse{Status: model.StatusCompleted, Meeting: m}, nil
	case model.StatusIdle:
		return &dto.TranscriptionStatusResponse{Status: model.StatusIdle}, nil
	}
	if s.transcriber == nil {
		return nil, errors.NewServiceUnavailableError("Transcription is not configured")
	}

	started := time.Now()
	t, err := s.transcriber.Get(ctx, *m.TranscriptID)
	s.observeProvider("get", started, err)
	if err != nil {
		s.logger.Error("Failed to fetch transcription status", zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, errors.NewProcessingError(errors.CodeTranscriptionError, "Failed to check transcription status")
	}

	switch t.Status {
	case provider.JobCompleted:
		updated, err := s.complete(ctx, m, t)
		if err != nil {
			return nil, err
		}
		return &dto.TranscriptionStatusResponse{Status: model.StatusCompleted, Meeting: updated}, nil
	case provider.JobError:
		s.countJob("failed")
		return &dto.TranscriptionStatusResponse{
			Status:       model.StatusError,
			TranscriptID: m.TranscriptID,
			Error:        t.ErrorOrDefault(),
		}, nil
	default:
		return &dto.TranscriptionStatusResponse{Status: statusFor(t.Status), TranscriptID: m.TranscriptID}, nil
	}
}

// ResetTranscription forgets an outstanding job so the recording can be submitted again
func (s *TranscriptionServiceImpl) ResetTranscription(ctx context.Context, userID, meetingID string) error {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return err
	}
	if m.HasTranscript() {
		return errors.NewValidationError("Meeting is already transcribed", map[string]string{
			"meeting_id": "already transcribed",
		})
	}
	if !m.HasJob() {
		return nil
	}
	if err := s.store.ResetTranscriptJob(ctx, meetingID); err != nil {
		return errors.FromStore(err, "meeting")
	}
	s.countJob("reset")
	if updated, err := s.store.GetMeeting(ctx, meetingID); err == nil {
		s.events.Meeting(ctx, realtime.EventUpdate, updated, m)
	}
	return nil
}

// HandleWebhook completes a meeting from a provider callback
func (s *TranscriptionServiceImpl) HandleWebhook(ctx context.Context, meetingID, secret string, payload *dto.WebhookPayload) error {
	if want := s.settings.WebhookSecret; want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(secret)) != 1 {
		s.countWebhook("unauthorized")
		return errors.NewForbiddenError("Invalid webhook secret")
	}

	log := s.logger.With(zap.String("meeting_id", meetingID), zap.String("transcript_id", payload.TranscriptID))

	m, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		s.countWebhook("unknown_meeting")
		log.Warn("Webhook for unknown meeting", zap.Error(err))
		return nil
	}
	if m.HasTranscript() {
		s.countWebhook("duplicate")
		log.Debug("Webhook for meeting that is already transcribed")
		return nil
	}
	if !m.HasJob() {
		s.countWebhook("no_job")
		log.Warn("Webhook for meeting without an outstanding job")
		return nil
	}
	if *m.TranscriptID != payload.TranscriptID {
		s.countWebhook("mismatch")
		log.Warn("Webhook transcript id does not match the outstanding job", zap.String("expected", *m.TranscriptID))
		return nil
	}
	if payload.Status == provider.JobError {
		s.countWebhook("provider_error")
		s.countJob("failed")
		log.Warn("Provider reported transcription failure")
		return nil
	}
	if payload.Status != "" && payload.Status != provider.JobCompleted {
		s.countWebhook("ignored")
		return nil
	}
	if s.transcriber == nil {
		s.countWebhook("disabled")
		log.Warn("Webhook received while transcription is not configured")
		return nil
	}

	started := time.Now()
	t, err := s.transcriber.Get(ctx, payload.TranscriptID)
	s.observeProvider("get", started, err)
	if err != nil {
		s.countWebhook("fetch_failed")
		log.Error("Failed to fetch transcript for webhook", zap.Error(err))
		return nil
	}
	if t.Status != provider.JobCompleted {
		s.countWebhook("not_ready")
		log.Warn("Webhook transcript is not completed", zap.String("status", t.Status))
		return nil
	}
	if _, err := s.complete(ctx, m, t); err != nil {
		s.countWebhook("write_failed")
		log.Error("Failed to store transcript from webhook", zap.Error(err))
		return nil
	}
	s.countWebhook("completed")
	return nil
}

// complete is the single completion write shared by polling and webhooks.
// It is idempotent: when a transcript is already stored nothing else happens.
func (s *TranscriptionServiceImpl) complete(ctx context.Context, m *model.Meeting, t *provider.Transcript) (*model.Meeting, error) {
	text := t.TextOrEmpty()
	if strings.TrimSpace(text) == "" {
		text = NoSpeechPlaceholder
	}
	wrote, err := s.store.CompleteTranscription(ctx, m.ID, model.TranscriptionCompletion{
		Transcript:   text,
		Participants: insights.Participants(t.Utterances),
		Language:     t.LanguageCode,
		Duration:     t.DurationSeconds(),
	})
	if err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	updated, err := s.store.GetMeeting(ctx, m.ID)
	if err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	if !wrote {
		return updated, nil
	}
	s.countJob("completed")

	analysis := insights.Compute(m.ID, t.Utterances, t.SentimentResults, s.clock.Now())
	if err := s.store.UpsertInsights(ctx, analysis); err != nil {
		s.logger.Warn("Failed to store insights", zap.String("meeting_id", m.ID), zap.Error(err))
	} else {
		s.events.Insights(ctx, m.UserID, analysis)
	}
	s.events.Meeting(ctx, realtime.EventUpdate, updated, m)

	if s.summaries != nil && s.summaries.Enabled() {
		meetingID := m.ID
		detached := context.WithoutCancel(ctx)
		s.run(func() {
			ctx, cancel := context.WithTimeout(detached, s.settings.SummaryTimeout)
			defer cancel()
			if err := s.summaries.SummarizeMeeting(ctx, meetingID); err != nil {
				s.logger.Warn("Automatic summarization failed", zap.String("meeting_id", meetingID), zap.Error(err))
			}
		})
	}

	s.logger.Info("Transcription completed",
		zap.String("meeting_id", m.ID),
		zap.Int("duration", updated.Duration),
		zap.Strings("participants", updated.Participants),
	)
	return updated, nil
}

func (s *TranscriptionServiceImpl) webhookURL(meetingID string) string {
	if s.settings.PublicBaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.settings.PublicBaseURL, "/") + WebhookPath + "?meeting_id=" + url.QueryEscape(meetingID)
}

func (s *TranscriptionServiceImpl) countJob(event string) {
	if s.metrics != nil {
		s.metrics.TranscriptionJobs.WithLabelValues(event).Inc()
	}
}

func (s *TranscriptionServiceImpl) countWebhook(outcome string) {
	if s.metrics != nil {
		s.metrics.WebhookDeliveries.WithLabelValues(outcome).Inc()
	}
}

func (s *TranscriptionServiceImpl) observeProvider(operation string, started time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveProvider(s.transcriber.Name(), operation, started, err)
	}
}

// statusFor maps a provider job state onto the externally visible status
func statusFor(providerStatus string) model.TranscriptionStatus {
	switch providerStatus {
	case provider.JobQueued:
		return model.StatusQueued
	case provider.JobProcessing:
		return model.StatusProcessing
	case provider.JobCompleted:
		return model.StatusCompleted
	case provider.JobError:
		return model.StatusError
	default:
		return model.StatusPending
	}
}
