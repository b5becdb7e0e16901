package model

import "time"

// SpeakerMetric summarises one speaker's participation
type SpeakerMetric struct {
	Speaker         string  `json:"speaker"`
	TalkTimeSeconds float64 `json:"talk_time_seconds"`
	TalkRatio       float64 `json:"talk_ratio"`
	Turns           int     `json:"turns"`
	Words           int     `json:"words"`
}

// SentimentPoint is the sentiment of one transcript segment
type SentimentPoint struct {
	StartMs   int64  `json:"start_ms"`
	EndMs     int64  `json:"end_ms"`
	Sentiment string `json:"sentiment"`
	Speaker   string `json:"speaker"`
}

// Interruption records a speaker starting before the previous one finished
type Interruption struct {
	AtMs        int64  `json:"at_ms"`
	Interrupter string `json:"interrupter"`
	Interrupted string `json:"interrupted"`
}

// Insights is the derived analytics record of a meeting
type Insights struct {
	MeetingID         string           `json:"meeting_id" db:"meeting_id"`
	SpeakerMetrics    []SpeakerMetric  `json:"speaker_metrics" db:"speaker_metrics"`
	SentimentTimeline []SentimentPoint `json:"sentiment_timeline" db:"sentiment_timeline"`
	Interruptions     []Interruption   `json:"interruptions" db:"interruptions"`
	EngagementScore   float64          `json:"engagement_score" db:"engagement_score"`
	GeneratedAt       time.Time        `json:"generated_at" db:"generated_at"`
}

// TableName returns the table name for Insights
func (Insights) TableName() string {
	return "meeting_insights"
}
