package dto

import (
	"time"

	"meetingmind/internal/app/model"
)

// CreateShareRequest is the body of POST /meetings/{id}/shares
type CreateShareRequest struct {
	ExpiresInHours *int `json:"expires_in_hours" binding:"omitempty,min=1,max=8760"`
}

// ShareResponse is a share link
type ShareResponse struct {
	model.Share
	URL string `json:"url"`
}

// SharedMeetingResponse is the read-only view served to share link holders
type SharedMeetingResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  *string            `json:"description"`
	Transcript   *string            `json:"transcript"`
	Summary      *model.Summary     `json:"summary"`
	ActionItems  []model.ActionItem `json:"action_items"`
	Participants []string           `json:"participants"`
	Duration     int                `json:"duration"`
	RecordedAt   *time.Time         `json:"recorded_at"`
	CreatedAt    time.Time          `json:"created_at"`
	ExpiresAt    *time.Time         `json:"expires_at"`
}

// NewSharedMeetingResponse strips owner-only fields
func NewSharedMeetingResponse(m *model.Meeting, s *model.Share) *SharedMeetingResponse {
	return &SharedMeetingResponse{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Transcript:   m.Transcript,
		Summary:      m.Summary,
		ActionItems:  m.ActionItems,
		Participants: m.Participants,
		Duration:     m.Duration,
		RecordedAt:   m.RecordedAt,
		CreatedAt:    m.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
	}
}

// UpdateNotesRequest is the body of POST /public/notes
type UpdateNotesRequest struct {
	Token       string `json:"token" binding:"required,min=8,max=128"`
	Content     string `json:"content" binding:"max=100000"`
	EditedBy    string `json:"edited_by" binding:"required,max=100"`
	EditorColor string `json:"editor_color" binding:"omitempty,hexcolor"`
}
