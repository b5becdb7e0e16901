package repository

import (
	"context"

	"meetingmind/internal/app/model"
)

// MeetingRepository persists meetings and the results written back by background jobs
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, m *model.Meeting) error
	GetMeeting(ctx context.Context, id string) (*model.Meeting, error)
	ListMeetings(ctx context.Context, filter model.MeetingFilter) ([]model.Meeting, int, error)
	UpdateMeeting(ctx context.Context, id string, patch model.MeetingPatch) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error

	// ClaimTranscriptJob records transcriptID only when no job or transcript is present.
	// It reports false when another caller won the race.
	ClaimTranscriptJob(ctx context.Context, id, transcriptID string) (bool, error)
	// ResetTranscriptJob clears a failed job so transcription can be retried
	ResetTranscriptJob(ctx context.Context, id string) error
	// CompleteTranscription writes the transcript and clears the job id unless a transcript
	// is already stored. It reports whether this call performed the write.
	CompleteTranscription(ctx context.Context, id string, c model.TranscriptionCompletion) (bool, error)
	SaveSummary(ctx context.Context, id string, summary *model.Summary, items []model.ActionItem) error
	SaveTranslation(ctx context.Context, id, language string, t model.Translation) error
}

// CommentRepository persists transcript annotations
type CommentRepository interface {
	CreateComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	ListComments(ctx context.Context, meetingID string) ([]model.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// ShareRepository persists share links
type ShareRepository interface {
	CreateShare(ctx context.Context, s *model.Share) error
	GetShare(ctx context.Context, token string) (*model.Share, error)
	ListShares(ctx context.Context, meetingID string) ([]model.Share, error)
	DeleteShare(ctx context.Context, token string) error
}

// NotesRepository persists the last-writer-wins shared notes
type NotesRepository interface {
	GetNotes(ctx context.Context, meetingID, shareToken string) (*model.Notes, error)
	// UpsertNotes overwrites the document unconditionally and returns it with the incremented version
	UpsertNotes(ctx context.Context, n *model.Notes) (*model.Notes, error)
}

// InsightsRepository persists derived meeting analytics
type InsightsRepository interface {
	GetInsights(ctx context.Context, meetingID string) (*model.Insights, error)
	UpsertInsights(ctx context.Context, i *model.Insights) error
}

// TemplateRepository persists title templates; at most one per user is default
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, t *model.Template) error
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	ListTemplates(ctx context.Context, userID string) ([]model.Template, error)
	UpdateTemplate(ctx context.Context, t *model.Template) error
	DeleteTemplate(ctx context.Context, id string) error
	GetDefaultTemplate(ctx context.Context, userID string) (*model.Template, error)
}

// Store is the full persistence surface used by the services
type Store interface {
	MeetingRepository
	CommentRepository
	ShareRepository
	NotesRepository
	InsightsRepository
	TemplateRepository

	Ping(ctx context.Context) error
	Close() error
}
