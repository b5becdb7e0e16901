package model

import "time"

// Share grants time-limited, read-only access to one meeting without a session
type Share struct {
	Token     string     `json:"token" db:"token"`
	MeetingID string     `json:"meeting_id" db:"meeting_id"`
	UserID    string     `json:"user_id" db:"user_id"`
	ExpiresAt *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// TableName returns the table name for Share
func (Share) TableName() string {
	return "shared_meetings"
}

// Expired reports whether the token is no longer usable at now
func (s *Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Notes is the shared scratch document for one (meeting, share token) pair.
// Writes are last-writer-wins; Version grows by one per write.
type Notes struct {
	MeetingID   string    `json:"meeting_id" db:"meeting_id"`
	ShareToken  string    `json:"share_token" db:"share_token"`
	Content     string    `json:"content" db:"content"`
	Version     int       `json:"version" db:"version"`
	EditedBy    string    `json:"edited_by" db:"edited_by"`
	EditorColor string    `json:"editor_color" db:"editor_color"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Notes
func (Notes) TableName() string {
	return "meeting_notes"
}
