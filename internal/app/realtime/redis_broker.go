package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannel is the Redis pub/sub channel events travel on
const DefaultChannel = "realtime:events"

// RedisBroker publishes through Redis so every instance sees every event.
// Each instance re-dispatches received events to its local subscribers.
type RedisBroker struct {
	client  *redis.Client
	channel string
	local   *MemoryBroker
	logger  *zap.Logger
}

// NewRedisBroker wraps local; call Run to start receiving
func NewRedisBroker(client *redis.Client, channel string, local *MemoryBroker, logger *zap.Logger) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{
		client:  client,
		channel: channel,
		local:   local,
		logger:  logger.Named("realtime"),
	}
}

// Publish sends e to all instances, including this one via Run
func (b *RedisBroker) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe registers a local subscriber
func (b *RedisBroker) Subscribe(filter Filter, onEvent func(Event)) Unsubscribe {
	return b.local.Subscribe(filter, onEvent)
}

// Run relays channel messages to local subscribers until ctx is cancelled
func (b *RedisBroker) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	b.logger.Info("relaying realtime events", zap.String("channel", b.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.relay(ctx, msg.Payload)
		}
	}
}

func (b *RedisBroker) relay(ctx context.Context, payload string) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		b.logger.Warn("dropping malformed realtime event", zap.Error(err))
		return
	}
	_ = b.local.Publish(ctx, e)
}
