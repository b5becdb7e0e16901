package model

import (
	"strings"
	"time"
)

// Priority of an action item
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NormalizePriority maps free-form model output onto the three supported priorities
func NormalizePriority(p string) Priority {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high", "urgent", "critical":
		return PriorityHigh
	case "low", "minor":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Summary is the structured outcome of summarization
type Summary struct {
	Overview  string   `json:"overview"`
	KeyPoints []string `json:"key_points"`
	Decisions []string `json:"decisions"`
	NextSteps []string `json:"next_steps"`
}

// ActionItem is a task extracted from a meeting
type ActionItem struct {
	Task      string   `json:"task"`
	Assignee  *string  `json:"assignee,omitempty"`
	DueDate   *string  `json:"due_date,omitempty"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// Translation is the cached translated content for one language
type Translation struct {
	Summary      *Summary     `json:"summary,omitempty"`
	ActionItems  []ActionItem `json:"action_items"`
	TranslatedAt time.Time    `json:"translated_at"`
}

// Meeting is a recorded meeting owned by one user
type Meeting struct {
	ID           string                 `json:"id" db:"id"`
	UserID       string                 `json:"user_id" db:"user_id"`
	Title        string                 `json:"title" db:"title"`
	Description  *string                `json:"description" db:"description"`
	AudioURL     string                 `json:"audio_url" db:"audio_url"`
	Transcript   *string                `json:"transcript" db:"transcript"`
	TranscriptID *string                `json:"transcript_id" db:"transcript_id"`
	Summary      *Summary               `json:"summary" db:"summary"`
	ActionItems  []ActionItem           `json:"action_items" db:"action_items"`
	Participants []string               `json:"participants" db:"participants"`
	Duration     int                    `json:"duration" db:"duration"`
	Language     *string                `json:"language" db:"language"`
	Translations map[string]Translation `json:"translations" db:"translations"`
	RecordedAt   *time.Time             `json:"recorded_at" db:"recorded_at"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// HasAudio reports whether an audio object is attached
func (m *Meeting) HasAudio() bool {
	return m.AudioURL != ""
}

// HasTranscript reports whether a non-empty transcript is stored
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != nil && *m.Transcript != ""
}

// HasJob reports whether a transcription job is outstanding
func (m *Meeting) HasJob() bool {
	return m.TranscriptID != nil && *m.TranscriptID != ""
}

// HasSummary reports whether a summary is stored
func (m *Meeting) HasSummary() bool {
	return m.Summary != nil
}

// TranscriptionCompletion is the data written back when a job finishes
type TranscriptionCompletion struct {
	Transcript   string
	Participants []string
	Language     *string
	Duration     int
}

// MeetingFilter narrows meeting listings
type MeetingFilter struct {
	UserID string
	Search string
	Limit  int
	Offset int
}

// MeetingPatch holds the user-editable fields of a meeting
type MeetingPatch struct {
	Title       *string
	Description *string
	ActionItems []ActionItem
}
