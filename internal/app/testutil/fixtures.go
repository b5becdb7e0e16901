package testutil

import (
	"time"

	"github.com/google/uuid"

	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/model"
)

// TestUserID owns every fixture meeting
const TestUserID = "user-1"

// OtherUserID never owns fixtures
const OtherUserID = "user-2"

// FixedTime is the reference instant used by fake clocks in tests
var FixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// NewMeeting returns an uploaded meeting with audio and nothing else
func NewMeeting() *model.Meeting {
	return &model.Meeting{
		ID:       uuid.NewString(),
		UserID:   TestUserID,
		Title:    "Weekly sync",
		AudioURL: "audio/" + TestUserID + "/recording.mp3",
	}
}

// MeetingWithJob returns a meeting whose transcription was submitted as transcriptID
func MeetingWithJob(transcriptID string) *model.Meeting {
	m := NewMeeting()
	m.TranscriptID = &transcriptID
	return m
}

// TranscribedMeeting returns a meeting with a stored transcript
func TranscribedMeeting() *model.Meeting {
	m := NewMeeting()
	text := "Alice: let's ship on Friday.\n\nBob: I will update the changelog."
	lang := "en"
	m.Transcript = &text
	m.Participants = []string{"Speaker A", "Speaker B"}
	m.Language = &lang
	m.Duration = 95
	return m
}

// SummarizedMeeting returns a transcribed meeting with a summary and two action items
func SummarizedMeeting() *model.Meeting {
	m := TranscribedMeeting()
	bob := "Bob"
	m.Summary = &model.Summary{
		Overview:  "Release planning for Friday.",
		KeyPoints: []string{"Release is on track"},
		Decisions: []string{"Ship on Friday"},
		NextSteps: []string{"Update the changelog"},
	}
	m.ActionItems = []model.ActionItem{
		{Task: "Update the changelog", Assignee: &bob, Priority: model.PriorityHigh},
		{Task: "Announce the release", Priority: model.PriorityMedium, Completed: true},
	}
	return m
}

// TwoSpeakerTranscript is a completed provider job with speakers A and B
func TwoSpeakerTranscript(id string) *provider.Transcript {
	text := "Let's ship on Friday. I will update the changelog."
	lang := "en"
	duration := 95.4
	speakerA, speakerB := "A", "B"
	return &provider.Transcript{
		ID:            id,
		Status:        provider.JobCompleted,
		Text:          &text,
		LanguageCode:  &lang,
		AudioDuration: &duration,
		Utterances: []provider.Utterance{
			{Speaker: "A", Text: "Let's ship on Friday.", Start: 0, End: 4000, Confidence: 0.94},
			{Speaker: "B", Text: "I will update the changelog.", Start: 3500, End: 9000, Confidence: 0.91},
			{Speaker: "A", Text: "Great.", Start: 9500, End: 10500, Confidence: 0.99},
		},
		SentimentResults: []provider.SentimentResult{
			{Text: "Let's ship on Friday.", Start: 0, End: 4000, Sentiment: "POSITIVE", Speaker: &speakerA},
			{Text: "I will update the changelog.", Start: 3500, End: 9000, Sentiment: "NEUTRAL", Speaker: &speakerB},
		},
	}
}

// UnlabelledTranscript is a completed provider job without speaker labels
func UnlabelledTranscript(id string) *provider.Transcript {
	text := "Testing one two three."
	return &provider.Transcript{ID: id, Status: provider.JobCompleted, Text: &text}
}

// PendingTranscript is a provider job that has not finished
func PendingTranscript(id, status string) *provider.Transcript {
	return &provider.Transcript{ID: id, Status: status}
}

// FailedTranscript is a provider job that ended in error
func FailedTranscript(id, message string) *provider.Transcript {
	return &provider.Transcript{ID: id, Status: provider.JobError, Error: &message}
}

// SummaryResult is a language model response with one action item
func SummaryResult() *provider.SummaryResult {
	return &provider.SummaryResult{
		Summary: model.Summary{
			Overview:  "The team agreed to ship on Friday.",
			KeyPoints: []string{"Release is ready"},
			Decisions: []string{"Ship on Friday"},
			NextSteps: []string{"Update the changelog"},
		},
		ActionItems: []model.ActionItem{{Task: "Update the changelog", Priority: model.PriorityHigh}},
	}
}
