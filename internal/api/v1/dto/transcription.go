package dto

import (
	"meetingmind/internal/app/model"
)

// TranscriptionStatusResponse reports where a meeting's transcription stands
type TranscriptionStatusResponse struct {
	Status       model.TranscriptionStatus `json:"status"`
	TranscriptID *string                   `json:"transcript_id,omitempty"`
	Error        string                    `json:"error,omitempty"`
	Meeting      *model.Meeting            `json:"meeting,omitempty"`
}

// WebhookQuery identifies the meeting a provider callback belongs to
type WebhookQuery struct {
	MeetingID string `form:"meeting_id"`
}

// WebhookPayload is the body the transcription provider posts on completion
type WebhookPayload struct {
	TranscriptID string `json:"transcript_id" binding:"required"`
	Status       string `json:"status"`
}

// WebhookResponse acknowledges a callback
type WebhookResponse struct {
	Received bool `json:"received"`
}
