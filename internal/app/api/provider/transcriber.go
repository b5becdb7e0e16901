package provider

import "context"

// Job states reported by the speech provider
const (
	JobQueued     = "queued"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobError      = "error"
)

// SubmitRequest starts an asynchronous transcription of a remotely hosted recording
type SubmitRequest struct {
	AudioURL          string
	WebhookURL        string
	WebhookAuthHeader string
	WebhookAuthValue  string
	SpeakerLabels     bool
	LanguageDetection bool
	SentimentAnalysis bool
}

// Utterance is one speaker turn; times are in milliseconds
type Utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

// SentimentResult is the sentiment of one sentence
type SentimentResult struct {
	Text      string  `json:"text"`
	Start     int64   `json:"start"`
	End       int64   `json:"end"`
	Sentiment string  `json:"sentiment"`
	Speaker   *string `json:"speaker"`
}

// Transcript is the provider's view of a job
type Transcript struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	Text             *string           `json:"text"`
	Error            *string           `json:"error"`
	LanguageCode     *string           `json:"language_code"`
	AudioDuration    *float64          `json:"audio_duration"`
	Utterances       []Utterance       `json:"utterances"`
	SentimentResults []SentimentResult `json:"sentiment_analysis_results"`
}

// TextOrEmpty returns the transcript text, or "" while the job is unfinished
func (t *Transcript) TextOrEmpty() string {
	if t.Text == nil {
		return ""
	}
	return *t.Text
}

// ErrorOrDefault returns the provider's error message or a generic one
func (t *Transcript) ErrorOrDefault() string {
	if t.Error == nil || *t.Error == "" {
		return "Transcription failed"
	}
	return *t.Error
}

// DurationSeconds rounds the audio duration to whole seconds
func (t *Transcript) DurationSeconds() int {
	if t.AudioDuration == nil {
		return 0
	}
	return int(*t.AudioDuration + 0.5)
}

// Transcriber is a hosted asynchronous speech-to-text provider
type Transcriber interface {
	Name() string
	Submit(ctx context.Context, req SubmitRequest) (*Transcript, error)
	Get(ctx context.Context, transcriptID string) (*Transcript, error)
}
