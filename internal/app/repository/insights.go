package repository

import (
	"context"

	"meetingmind/internal/app/model"
)

// GetInsights loads the analytics record of a meeting
func (s *SQLStore) GetInsights(ctx context.Context, meetingID string) (*model.Insights, error) {
	query := s.rebind(`SELECT meeting_id, speaker_metrics, sentiment_timeline, interruptions, engagement_score, generated_at
		FROM meeting_insights WHERE meeting_id = ?`)

	var (
		i                                  model.Insights
		speakers, sentiment, interruptions []byte
	)
	err := s.db.QueryRowContext(ctx, query, meetingID).Scan(
		&i.MeetingID, &speakers, &sentiment, &interruptions, &i.EngagementScore, &i.GeneratedAt,
	)
	if err != nil {
		return nil, s.mapError(err, "insights", meetingID)
	}

	i.SpeakerMetrics = []model.SpeakerMetric{}
	i.SentimentTimeline = []model.SentimentPoint{}
	i.Interruptions = []model.Interruption{}
	if err := decodeJSON(speakers, &i.SpeakerMetrics); err != nil {
		return nil, err
	}
	if err := decodeJSON(sentiment, &i.SentimentTimeline); err != nil {
		return nil, err
	}
	if err := decodeJSON(interruptions, &i.Interruptions); err != nil {
		return nil, err
	}
	return &i, nil
}

// UpsertInsights replaces the analytics record of a meeting
func (s *SQLStore) UpsertInsights(ctx context.Context, i *model.Insights) error {
	if i.GeneratedAt.IsZero() {
		i.GeneratedAt = s.now()
	}
	speakers, err := encodeJSON(nonNil(i.SpeakerMetrics))
	if err != nil {
		return err
	}
	sentiment, err := encodeJSON(nonNil(i.SentimentTimeline))
	if err != nil {
		return err
	}
	interruptions, err := encodeJSON(nonNil(i.Interruptions))
	if err != nil {
		return err
	}

	query := s.rebind(`INSERT INTO meeting_insights
			(meeting_id, speaker_metrics, sentiment_timeline, interruptions, engagement_score, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (meeting_id) DO UPDATE SET
			speaker_metrics = excluded.speaker_metrics,
			sentiment_timeline = excluded.sentiment_timeline,
			interruptions = excluded.interruptions,
			engagement_score = excluded.engagement_score,
			generated_at = excluded.generated_at`)
	_, err = s.db.ExecContext(ctx, query, i.MeetingID, speakers, sentiment, interruptions, i.EngagementScore, i.GeneratedAt)
	return s.mapError(err, "insights", i.MeetingID)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
