package services

import (
	"context"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/repository"
)

// InsightsServiceImpl implements InsightsService
type InsightsServiceImpl struct {
	store repository.Store
}

// NewInsightsService creates a new insights service
func NewInsightsService(store repository.Store) InsightsService {
	return &InsightsServiceImpl{store: store}
}

// GetInsights returns the analytics computed when the meeting was transcribed
func (s *InsightsServiceImpl) GetInsights(ctx context.Context, userID, meetingID string) (*model.Insights, error) {
	if _, err := ownedMeeting(ctx, s.store, userID, meetingID); err != nil {
		return nil, err
	}
	i, err := s.store.GetInsights(ctx, meetingID)
	if err != nil {
		return nil, errors.FromStore(err, "insights")
	}
	return i, nil
}
