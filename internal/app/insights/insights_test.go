package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmind/internal/app/api/provider"
)

func strPtr(s string) *string { return &s }

func TestParticipants(t *testing.T) {
	tests := []struct {
		name       string
		utterances []provider.Utterance
		want       []string
	}{
		{"no utterances", nil, []string{UnknownSpeaker}},
		{"unlabelled", []provider.Utterance{{Text: "hi"}}, []string{UnknownSpeaker}},
		{"distinct in order", []provider.Utterance{{Speaker: "B"}, {Speaker: "A"}, {Speaker: "B"}}, []string{"Speaker B", "Speaker A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Participants(tt.utterances))
		})
	}
}

func TestCompute(t *testing.T) {
	utterances := []provider.Utterance{
		{Speaker: "A", Text: "Let's start the review", Start: 0, End: 6000},
		{Speaker: "B", Text: "Sure", Start: 5500, End: 8000},
		{Speaker: "A", Text: "Great thanks", Start: 8000, End: 10000},
	}
	sentiments := []provider.SentimentResult{
		{Text: "Let's start the review", Start: 0, End: 6000, Sentiment: "NEUTRAL", Speaker: strPtr("A")},
		{Text: "Great thanks", Start: 8000, End: 10000, Sentiment: "POSITIVE", Speaker: strPtr("A")},
		{Text: "Sure", Start: 5500, End: 8000, Sentiment: "POSITIVE"},
	}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	ins := Compute("m-1", utterances, sentiments, now)

	assert.Equal(t, "m-1", ins.MeetingID)
	assert.Equal(t, now, ins.GeneratedAt)

	require.Len(t, ins.SpeakerMetrics, 2)
	a := ins.SpeakerMetrics[0]
	assert.Equal(t, "Speaker A", a.Speaker)
	assert.Equal(t, 8.0, a.TalkTimeSeconds)
	assert.Equal(t, 2, a.Turns)
	assert.Equal(t, 6, a.Words)
	assert.InDelta(t, 0.762, a.TalkRatio, 0.001)

	require.Len(t, ins.Interruptions, 1)
	assert.Equal(t, int64(5500), ins.Interruptions[0].AtMs)
	assert.Equal(t, "Speaker B", ins.Interruptions[0].Interrupter)
	assert.Equal(t, "Speaker A", ins.Interruptions[0].Interrupted)

	require.Len(t, ins.SentimentTimeline, 3)
	assert.Equal(t, "neutral", ins.SentimentTimeline[0].Sentiment)
	assert.Equal(t, UnknownSpeaker, ins.SentimentTimeline[2].Speaker)

	assert.Greater(t, ins.EngagementScore, 0.0)
	assert.LessOrEqual(t, ins.EngagementScore, 100.0)
}

func TestEngagementEmpty(t *testing.T) {
	ins := Compute("m-1", nil, nil, time.Now())
	assert.Equal(t, 0.0, ins.EngagementScore)
	assert.Empty(t, ins.SpeakerMetrics)
	assert.Empty(t, ins.Interruptions)
}

func TestEngagementSingleSpeakerHasNoBalance(t *testing.T) {
	utterances := []provider.Utterance{{Speaker: "A", Start: 0, End: 60000}}
	// balance 0, neutral mood 0.5 -> 15, one turn per minute -> pace 0.25 -> 5
	assert.Equal(t, 20.0, engagement(utterances, nil))
}
