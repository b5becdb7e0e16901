package services

import (
	"context"
	"io"

	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/export"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/template"
)

// UploadFile is the recording part of an upload request
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// MeetingService defines the interface for meeting operations
type MeetingService interface {
	Upload(ctx context.Context, userID string, file UploadFile, form *dto.UploadForm) (*dto.UploadResponse, error)
	ListMeetings(ctx context.Context, userID string, query dto.ListMeetingsQuery) (*dto.MeetingListResponse, error)
	GetMeeting(ctx context.Context, userID, meetingID string) (*model.Meeting, error)
	UpdateMeeting(ctx context.Context, userID, meetingID string, req *dto.UpdateMeetingRequest) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, userID, meetingID string) error
}

// TranscriptionService defines the interface for the transcription job lifecycle
type TranscriptionService interface {
	StartTranscription(ctx context.Context, userID, meetingID string) (*dto.TranscriptionStatusResponse, error)
	CheckStatus(ctx context.Context, userID, meetingID string) (*dto.TranscriptionStatusResponse, error)
	ResetTranscription(ctx context.Context, userID, meetingID string) error
	// HandleWebhook only fails when the caller is not trusted; delivery problems are logged and acknowledged
	HandleWebhook(ctx context.Context, meetingID, secret string, payload *dto.WebhookPayload) error
}

// SummaryService defines the interface for summarization
type SummaryService interface {
	Enabled() bool
	Summarize(ctx context.Context, userID, meetingID string) (*model.Meeting, error)
	// SummarizeMeeting runs without an owner check; it is used after transcription completes
	SummarizeMeeting(ctx context.Context, meetingID string) error
}

// TranslationService defines the interface for summary translation
type TranslationService interface {
	GetTranslation(ctx context.Context, userID, meetingID, language string) (*dto.TranslationResponse, error)
	Translate(ctx context.Context, userID, meetingID string, req *dto.TranslateRequest) (*dto.TranslationResponse, error)
}

// CommentService defines the interface for transcript comments
type CommentService interface {
	ListComments(ctx context.Context, userID, meetingID string) ([]model.Comment, error)
	CreateComment(ctx context.Context, userID, userName, meetingID string, req *dto.CreateCommentRequest) (*model.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID string, req *dto.UpdateCommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
	ListPublicComments(ctx context.Context, token string) ([]model.Comment, error)
	CreatePublicComment(ctx context.Context, req *dto.PublicCommentRequest) (*model.Comment, error)
}

// ShareService defines the interface for share links
type ShareService interface {
	CreateShare(ctx context.Context, userID, meetingID string, req *dto.CreateShareRequest) (*dto.ShareResponse, error)
	ListShares(ctx context.Context, userID, meetingID string) ([]dto.ShareResponse, error)
	GetSharedMeeting(ctx context.Context, token string) (*dto.SharedMeetingResponse, error)
	DeleteShare(ctx context.Context, userID, token string) error
}

// NotesService defines the interface for shared notes
type NotesService interface {
	GetNotes(ctx context.Context, token string) (*model.Notes, error)
	UpdateNotes(ctx context.Context, req *dto.UpdateNotesRequest) (*model.Notes, error)
}

// TemplateService defines the interface for title templates
type TemplateService interface {
	ListTemplates(ctx context.Context, userID string) ([]model.Template, error)
	GetTemplate(ctx context.Context, userID, templateID string) (*model.Template, error)
	CreateTemplate(ctx context.Context, userID string, req *dto.CreateTemplateRequest) (*model.Template, error)
	UpdateTemplate(ctx context.Context, userID, templateID string, req *dto.UpdateTemplateRequest) (*model.Template, error)
	DeleteTemplate(ctx context.Context, userID, templateID string) error
	RenderTemplate(ctx context.Context, userID, templateID string, req *dto.RenderTemplateRequest) (*template.Rendered, error)
}

// InsightsService defines the interface for meeting analytics
type InsightsService interface {
	GetInsights(ctx context.Context, userID, meetingID string) (*model.Insights, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	ExportMeeting(ctx context.Context, userID, meetingID string, req *dto.ExportRequest) (*export.Document, error)
}

// ConfigService defines the interface for configuration operations
type ConfigService interface {
	GetConfig(ctx context.Context) *dto.ConfigResponse
	GetProviderStats(ctx context.Context) *dto.ProviderStatsResponse
}
