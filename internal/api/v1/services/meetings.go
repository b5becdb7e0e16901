package services

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/clock"
	apperrors "meetingmind/internal/app/errors"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/repository"
	"meetingmind/internal/app/storage"
	"meetingmind/internal/app/template"
)

// UploadSettings bounds what the upload endpoint accepts
type UploadSettings struct {
	MaxUploadMB  int
	PresignedTTL time.Duration
}

// MeetingServiceImpl implements MeetingService
type MeetingServiceImpl struct {
	store    repository.Store
	storage  storage.ObjectStorage
	events   *EventPublisher
	settings UploadSettings
	clock    clock.Clock
	logger   *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	store repository.Store,
	objects storage.ObjectStorage,
	events *EventPublisher,
	settings UploadSettings,
	clk clock.Clock,
	logger *zap.Logger,
) MeetingService {
	return &MeetingServiceImpl{
		store:    store,
		storage:  objects,
		events:   events,
		settings: settings,
		clock:    clk,
		logger:   logger.Named("meetings"),
	}
}

// Upload stores the recording and creates its meeting
func (s *MeetingServiceImpl) Upload(ctx context.Context, userID string, file UploadFile, form *dto.UploadForm) (*dto.UploadResponse, error) {
	if file.Size <= 0 {
		return nil, errors.NewValidationError("Validation failed", map[string]string{"file": "file is empty"})
	}
	if limit := int64(s.settings.MaxUploadMB) << 20; file.Size > limit {
		return nil, errors.NewValidationError("Validation failed", map[string]string{
			"file": fmt.Sprintf("file exceeds %d MB", s.settings.MaxUploadMB),
		})
	}
	contentType, ok := mediaType(file.ContentType, file.Filename)
	if !ok {
		return nil, errors.NewValidationError("Validation failed", map[string]string{
			"file": "only audio and video files are accepted",
		})
	}

	title, description, err := s.titleFor(ctx, userID, file.Filename, form)
	if err != nil {
		return nil, err
	}

	meetingID := uuid.NewString()
	key := storage.AudioKey(userID, meetingID, file.Filename)
	if _, err := s.storage.Put(ctx, key, file.Content, file.Size, contentType, map[string]string{
		"user-id":    userID,
		"meeting-id": meetingID,
	}); err != nil {
		s.logger.Error("Failed to store recording", zap.String("key", key), zap.Error(err))
		return nil, errors.NewProcessingError(errors.CodeUploadError, "Failed to store recording")
	}

	m := &model.Meeting{
		ID:          meetingID,
		UserID:      userID,
		Title:       title,
		Description: description,
		AudioURL:    key,
		RecordedAt:  form.RecordedTime(),
	}
	if err := s.store.CreateMeeting(ctx, m); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned recording", zap.String("key", key), zap.Error(delErr))
		}
		return nil, errors.FromStore(err, "meeting")
	}
	s.events.Meeting(ctx, realtime.EventInsert, m, nil)

	signed, err := s.storage.PresignedGet(ctx, key, s.settings.PresignedTTL)
	if err != nil {
		s.logger.Warn("Failed to presign recording", zap.String("meeting_id", meetingID), zap.Error(err))
	}

	s.logger.Info("Meeting uploaded",
		zap.String("meeting_id", meetingID),
		zap.String("user_id", userID),
		zap.Int64("size", file.Size),
	)
	return &dto.UploadResponse{Meeting: m, SignedURL: signed}, nil
}

// titleFor picks the explicit title, then the selected or default template, then the file name
func (s *MeetingServiceImpl) titleFor(ctx context.Context, userID, filename string, form *dto.UploadForm) (string, *string, error) {
	var description *string
	if d := strings.TrimSpace(form.Description); d != "" {
		description = &d
	}
	if t := strings.TrimSpace(form.Title); t != "" {
		return t, description, nil
	}

	tpl, err := s.templateFor(ctx, userID, form.TemplateID)
	if err != nil {
		return "", nil, err
	}
	if tpl != nil {
		vars := template.Variables{Participant: form.Participant, Project: form.Project, Topic: form.Topic}
		if at := form.RecordedTime(); at != nil {
			vars.Date = *at
		} else {
			vars.Date = s.clock.Now()
		}
		rendered := template.Apply(tpl, vars)
		if description == nil && rendered.Description != nil && *rendered.Description != "" {
			description = rendered.Description
		}
		if rendered.Title != "" {
			return rendered.Title, description, nil
		}
	}

	base := strings.TrimSpace(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" || base == "." {
		base = "Untitled meeting"
	}
	return base, description, nil
}

func (s *MeetingServiceImpl) templateFor(ctx context.Context, userID, templateID string) (*model.Template, error) {
	if templateID != "" {
		t, err := s.store.GetTemplate(ctx, templateID)
		if err != nil {
			return nil, errors.FromStore(err, "template")
		}
		if t.UserID != userID {
			return nil, errors.NewNotFoundError("template")
		}
		return t, nil
	}
	t, err := s.store.GetDefaultTemplate(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.FromStore(err, "template")
	}
	return t, nil
}

// ListMeetings returns one page of the caller's meetings, newest first
func (s *MeetingServiceImpl) ListMeetings(ctx context.Context, userID string, query dto.ListMeetingsQuery) (*dto.MeetingListResponse, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 20
	}
	meetings, total, err := s.store.ListMeetings(ctx, model.MeetingFilter{
		UserID: userID,
		Search: strings.TrimSpace(query.Search),
		Limit:  query.Limit,
		Offset: (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return nil, errors.FromStore(err, "meetings")
	}
	if meetings == nil {
		meetings = []model.Meeting{}
	}
	return &dto.MeetingListResponse{
		Meetings:   meetings,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// GetMeeting returns one of the caller's meetings
func (s *MeetingServiceImpl) GetMeeting(ctx context.Context, userID, meetingID string) (*model.Meeting, error) {
	return ownedMeeting(ctx, s.store, userID, meetingID)
}

// UpdateMeeting applies the editable fields
func (s *MeetingServiceImpl) UpdateMeeting(ctx context.Context, userID, meetingID string, req *dto.UpdateMeetingRequest) (*model.Meeting, error) {
	previous, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateMeeting(ctx, meetingID, req.Patch())
	if err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	s.events.Meeting(ctx, realtime.EventUpdate, updated, previous)
	return updated, nil
}

// DeleteMeeting removes the meeting and, best effort, its recording
func (s *MeetingServiceImpl) DeleteMeeting(ctx context.Context, userID, meetingID string) error {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMeeting(ctx, meetingID); err != nil {
		return errors.FromStore(err, "meeting")
	}
	if m.HasAudio() {
		if err := s.storage.Delete(ctx, m.AudioURL); err != nil {
			s.logger.Warn("Failed to delete recording", zap.String("meeting_id", meetingID), zap.Error(err))
		}
	}
	s.events.Meeting(ctx, realtime.EventDelete, nil, m)
	return nil
}

// mediaExtensions covers recordings whose browser sends no useful content type
var mediaExtensions = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".weba": "audio/webm",
	".webm": "video/webm",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
}

// mediaType accepts audio/* and video/*, falling back to the file extension for generic uploads
func mediaType(declared, filename string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" || ct == "application/octet-stream" {
		ext := strings.ToLower(path.Ext(filename))
		if known, ok := mediaExtensions[ext]; ok {
			ct = known
		} else {
			ct = strings.ToLower(mime.TypeByExtension(ext))
			if i := strings.Index(ct, ";"); i >= 0 {
				ct = ct[:i]
			}
		}
	}
	if strings.HasPrefix(ct, "audio/") || strings.HasPrefix(ct, "video/") {
		return ct, true
	}
	return ct, false
}
