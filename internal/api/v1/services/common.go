package services

import (
	"context"

	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/repository"
)

// DefaultAuthorColor is used when a commenter or note editor picks none
const DefaultAuthorColor = "#6366f1"

// Runner executes background work such as post-transcription summarization
type Runner func(func())

// Async runs work on a new goroutine
func Async(f func()) { go f() }

// ownedMeeting loads a meeting and hides it from everyone but its owner
func ownedMeeting(ctx context.Context, store repository.MeetingRepository, userID, meetingID string) (*model.Meeting, error) {
	m, err := store.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, errors.FromStore(err, "meeting")
	}
	if m.UserID != userID {
		return nil, errors.NewNotFoundError("meeting")
	}
	return m, nil
}

// shareResolver turns a public token into its share and meeting, enforcing expiry
type shareResolver struct {
	store repository.Store
	clock clock.Clock
}

func (r shareResolver) resolve(ctx context.Context, token string) (*model.Share, *model.Meeting, error) {
	share, err := r.store.GetShare(ctx, token)
	if err != nil {
		return nil, nil, errors.FromStore(err, "share")
	}
	if share.Expired(r.clock.Now()) {
		return nil, nil, errors.NewShareExpiredError()
	}
	m, err := r.store.GetMeeting(ctx, share.MeetingID)
	if err != nil {
		return nil, nil, errors.FromStore(err, "meeting")
	}
	return share, m, nil
}

// EventPublisher announces row changes to realtime subscribers.
// A nil publisher or broker drops events; publish failures are logged.
type EventPublisher struct {
	broker realtime.Broker
	logger *zap.Logger
}

// NewEventPublisher creates an EventPublisher
func NewEventPublisher(broker realtime.Broker, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{broker: broker, logger: logger.Named("events")}
}

// Meeting publishes a change of a meeting row; current is nil for deletes
func (p *EventPublisher) Meeting(ctx context.Context, typ realtime.EventType, current, previous *model.Meeting) {
	if p == nil || p.broker == nil {
		return
	}
	ref := current
	if ref == nil {
		ref = previous
	}
	if ref == nil {
		return
	}
	var newRow, oldRow interface{}
	if current != nil {
		newRow = current
	}
	if previous != nil {
		oldRow = previous
	}
	p.publish(ctx, realtime.TableMeetings, typ, ref.UserID, ref.ID, newRow, oldRow)
}

// Insights publishes a refreshed insights row
func (p *EventPublisher) Insights(ctx context.Context, ownerID string, i *model.Insights) {
	if p == nil || p.broker == nil || i == nil {
		return
	}
	p.publish(ctx, realtime.TableInsights, realtime.EventUpdate, ownerID, i.MeetingID, i, nil)
}

func (p *EventPublisher) publish(ctx context.Context, table string, typ realtime.EventType, ownerID, recordID string, newRow, oldRow interface{}) {
	event, err := realtime.NewEvent(table, typ, ownerID, recordID, newRow, oldRow)
	if err != nil {
		p.logger.Error("Failed to encode realtime event", zap.String("table", table), zap.Error(err))
		return
	}
	if err := p.broker.Publish(ctx, event); err != nil {
		p.logger.Warn("Failed to publish realtime event",
			zap.String("table", table),
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}
}
