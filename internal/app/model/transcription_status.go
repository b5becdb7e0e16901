package model

// TranscriptionStatus is the externally visible state of a meeting's transcription
type TranscriptionStatus string

const (
	StatusIdle       TranscriptionStatus = "idle"
	StatusQueued     TranscriptionStatus = "queued"
	StatusPending    TranscriptionStatus = "pending"
	StatusProcessing TranscriptionStatus = "processing"
	StatusCompleted  TranscriptionStatus = "completed"
	StatusError      TranscriptionStatus = "error"
)

// Terminal reports whether polling should stop at this status
func (s TranscriptionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// StatusFor derives the local status of a meeting without asking the provider
func StatusFor(m *Meeting) TranscriptionStatus {
	switch {
	case m.HasTranscript():
		return StatusCompleted
	case m.HasJob():
		return StatusQueued
	default:
		return StatusIdle
	}
}
