// Package insights derives participation and sentiment analytics from diarized transcripts.
package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/model"
)

// UnknownSpeaker is the participant list used when the provider returned no speaker labels
const UnknownSpeaker = "Unknown Speaker"

// SpeakerName turns a provider speaker label into a display name
func SpeakerName(label string) string {
	return "Speaker " + label
}

// Participants returns the distinct speakers in order of first appearance
func Participants(utterances []provider.Utterance) []string {
	labels := lo.Uniq(lo.FilterMap(utterances, func(u provider.Utterance, _ int) (string, bool) {
		return SpeakerName(u.Speaker), u.Speaker != ""
	}))
	if len(labels) == 0 {
		return []string{UnknownSpeaker}
	}
	return labels
}

// Compute builds the insights record of a meeting
func Compute(meetingID string, utterances []provider.Utterance, sentiments []provider.SentimentResult, now time.Time) *model.Insights {
	return &model.Insights{
		MeetingID:         meetingID,
		SpeakerMetrics:    speakerMetrics(utterances),
		SentimentTimeline: sentimentTimeline(sentiments),
		Interruptions:     interruptions(utterances),
		EngagementScore:   engagement(utterances, sentiments),
		GeneratedAt:       now,
	}
}

func speakerMetrics(utterances []provider.Utterance) []model.SpeakerMetric {
	byName := make(map[string]*model.SpeakerMetric)
	var order []string
	var total float64

	for _, u := range utterances {
		name := SpeakerName(u.Speaker)
		if u.Speaker == "" {
			name = UnknownSpeaker
		}
		m, ok := byName[name]
		if !ok {
			m = &model.SpeakerMetric{Speaker: name}
			byName[name] = m
			order = append(order, name)
		}
		seconds := float64(max64(u.End-u.Start, 0)) / 1000
		m.TalkTimeSeconds += seconds
		m.Turns++
		m.Words += len(strings.Fields(u.Text))
		total += seconds
	}

	metrics := make([]model.SpeakerMetric, 0, len(order))
	for _, name := range order {
		m := *byName[name]
		if total > 0 {
			m.TalkRatio = round(m.TalkTimeSeconds/total, 3)
		}
		m.TalkTimeSeconds = round(m.TalkTimeSeconds, 1)
		metrics = append(metrics, m)
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].TalkTimeSeconds > metrics[j].TalkTimeSeconds
	})
	return metrics
}

func sentimentTimeline(results []provider.SentimentResult) []model.SentimentPoint {
	return lo.Map(results, func(r provider.SentimentResult, _ int) model.SentimentPoint {
		speaker := UnknownSpeaker
		if r.Speaker != nil && *r.Speaker != "" {
			speaker = SpeakerName(*r.Speaker)
		}
		return model.SentimentPoint{
			StartMs:   r.Start,
			EndMs:     r.End,
			Sentiment: strings.ToLower(r.Sentiment),
			Speaker:   speaker,
		}
	})
}

// interruptions are turns that start before the previous speaker's turn ended
func interruptions(utterances []provider.Utterance) []model.Interruption {
	var out []model.Interruption
	for i := 1; i < len(utterances); i++ {
		prev, cur := utterances[i-1], utterances[i]
		if cur.Speaker == prev.Speaker || cur.Speaker == "" || prev.Speaker == "" {
			continue
		}
		if cur.Start < prev.End {
			out = append(out, model.Interruption{
				AtMs:        cur.Start,
				Interrupter: SpeakerName(cur.Speaker),
				Interrupted: SpeakerName(prev.Speaker),
			})
		}
	}
	return out
}

// engagement scores 0..100 from participation balance, sentiment and turn-taking pace
func engagement(utterances []provider.Utterance, sentiments []provider.SentimentResult) float64 {
	if len(utterances) == 0 {
		return 0
	}

	metrics := speakerMetrics(utterances)
	balance := 0.0
	if len(metrics) > 1 {
		var entropy float64
		for _, m := range metrics {
			if m.TalkRatio > 0 {
				entropy -= m.TalkRatio * math.Log(m.TalkRatio)
			}
		}
		balance = entropy / math.Log(float64(len(metrics)))
	}

	mood := 0.5
	if len(sentiments) > 0 {
		var points float64
		for _, s := range sentiments {
			switch strings.ToUpper(s.Sentiment) {
			case "POSITIVE":
				points++
			case "NEUTRAL":
				points += 0.5
			}
		}
		mood = points / float64(len(sentiments))
	}

	span := utterances[len(utterances)-1].End - utterances[0].Start
	pace := 0.0
	if span > 0 {
		turnsPerMinute := float64(len(utterances)) / (float64(span) / 60000)
		pace = math.Min(turnsPerMinute/4, 1)
	}

	return round(math.Min(100, 50*balance+30*mood+20*pace), 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
