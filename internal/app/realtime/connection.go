package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"meetingmind/internal/app/clock"
)

// Channel is one live realtime subscription
type Channel interface {
	Send(ctx context.Context, e Event) error
	// Done is closed when the underlying transport drops
	Done() <-chan struct{}
	Close() error
}

// Dialer opens a new channel
type Dialer func(ctx context.Context) (Channel, error)

// ConnectionOptions tunes heartbeat and reconnect behaviour
type ConnectionOptions struct {
	HeartbeatInterval time.Duration
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	MaxRetries        int
	PingTimeout       time.Duration

	OnReconnect func(Channel)
	OnFailure   func(error)

	Clock  clock.Clock
	Logger *zap.Logger
}

// DefaultConnectionOptions returns a 30s heartbeat and 1s..30s backoff with 5 retries
func DefaultConnectionOptions() ConnectionOptions {
	return ConnectionOptions{
		HeartbeatInterval: 30 * time.Second,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		MaxRetries:        5,
		PingTimeout:       5 * time.Second,
	}
}

// ConnectionManager keeps a channel alive: it pings idle channels and redials dropped ones.
// Callbacks and network calls are never made while holding the lock.
type ConnectionManager struct {
	dial Dialer
	opts ConnectionOptions

	mu           sync.Mutex
	channel      Channel
	lastActivity time.Time
	attempts     int
	heartbeat    clock.Timer
	reconnect    clock.Timer
	unwatch      chan struct{}
	failed       bool
	destroyed    bool
	generation   int
}

// NewConnectionManager fills unset options with defaults
func NewConnectionManager(dial Dialer, opts ConnectionOptions) *ConnectionManager {
	defaults := DefaultConnectionOptions()
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = defaults.HeartbeatInterval
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaults.BaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaults.MaxDelay
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = defaults.PingTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Logger = opts.Logger.Named("connection")

	return &ConnectionManager{dial: dial, opts: opts}
}

// Connect dials the first channel
func (m *ConnectionManager) Connect(ctx context.Context) (Channel, error) {
	ch, err := m.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open realtime channel: %w", err)
	}
	if !m.attach(ch, false) {
		ch.Close()
		return nil, fmt.Errorf("connection manager destroyed")
	}
	return ch, nil
}

// Channel returns the live channel, or nil while reconnecting
func (m *ConnectionManager) Channel() Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channel
}

// Attempts returns the number of reconnects scheduled since the last success
func (m *ConnectionManager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// MarkActivity records traffic so the next heartbeat can skip its ping
func (m *ConnectionManager) MarkActivity() {
	m.mu.Lock()
	m.lastActivity = m.opts.Clock.Now()
	m.mu.Unlock()
}

// HandleDisconnect drops the current channel and schedules a reconnect at
// min(BaseDelay*2^attempt, MaxDelay). Once MaxRetries reconnects have failed
// OnFailure is called a single time and nothing further is scheduled.
func (m *ConnectionManager) HandleDisconnect() {
	m.mu.Lock()
	if m.destroyed || m.failed || m.reconnect != nil {
		m.mu.Unlock()
		return
	}
	dropped := m.dropChannelLocked()
	if dropped != nil {
		defer dropped.Close()
	}

	if m.attempts >= m.opts.MaxRetries {
		m.failed = true
		attempts := m.attempts
		m.mu.Unlock()

		err := fmt.Errorf("realtime connection lost after %d reconnect attempts", attempts)
		m.opts.Logger.Error("giving up on realtime channel", zap.Error(err))
		if m.opts.OnFailure != nil {
			m.opts.OnFailure(err)
		}
		return
	}

	delay := m.backoff(m.attempts)
	m.attempts++
	attempt := m.attempts
	m.reconnect = m.opts.Clock.AfterFunc(delay, m.tryReconnect)
	m.mu.Unlock()

	m.opts.Logger.Info("scheduling realtime reconnect", zap.Int("attempt", attempt), zap.Duration("delay", delay))
}

// Reset cancels every pending timer and clears the retry budget. A live channel stays
// open but is no longer watched until Connect replaces it.
func (m *ConnectionManager) Reset() {
	m.mu.Lock()
	m.stopTimersLocked()
	m.attempts = 0
	m.failed = false
	m.generation++
	m.mu.Unlock()
}

// Destroy cancels timers and closes the channel; the manager is unusable afterwards
func (m *ConnectionManager) Destroy() {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}
	m.destroyed = true
	m.stopTimersLocked()
	m.generation++
	ch := m.dropChannelLocked()
	m.mu.Unlock()

	if ch != nil {
		ch.Close()
	}
}

func (m *ConnectionManager) backoff(attempt int) time.Duration {
	delay := m.opts.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= m.opts.MaxDelay {
			return m.opts.MaxDelay
		}
	}
	if delay > m.opts.MaxDelay {
		return m.opts.MaxDelay
	}
	return delay
}

func (m *ConnectionManager) tryReconnect() {
	m.mu.Lock()
	if m.destroyed || m.reconnect == nil {
		m.mu.Unlock()
		return
	}
	m.reconnect = nil
	gen := m.generation
	m.mu.Unlock()

	ch, err := m.dial(context.Background())

	m.mu.Lock()
	stale := m.destroyed || gen != m.generation
	m.mu.Unlock()
	if stale {
		if ch != nil {
			ch.Close()
		}
		return
	}

	if err != nil {
		m.opts.Logger.Warn("realtime reconnect failed", zap.Error(err))
		m.HandleDisconnect()
		return
	}

	if m.attach(ch, true) && m.opts.OnReconnect != nil {
		m.opts.OnReconnect(ch)
	}
}

// attach installs ch, starts the heartbeat and watches for the drop
func (m *ConnectionManager) attach(ch Channel, reconnected bool) bool {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return false
	}
	if old := m.dropChannelLocked(); old != nil && old != ch {
		defer old.Close()
	}
	m.channel = ch
	m.lastActivity = m.opts.Clock.Now()
	if reconnected {
		m.attempts = 0
	}
	m.failed = false
	m.generation++
	gen := m.generation
	m.heartbeat = m.opts.Clock.AfterFunc(m.opts.HeartbeatInterval, func() { m.beat(gen) })
	m.unwatch = make(chan struct{})
	unwatch := m.unwatch
	m.mu.Unlock()

	go m.watch(ch, gen, unwatch)
	return true
}

func (m *ConnectionManager) watch(ch Channel, gen int, unwatch <-chan struct{}) {
	select {
	case <-ch.Done():
	case <-unwatch:
		return
	}

	m.mu.Lock()
	current := m.channel == ch && m.generation == gen
	m.mu.Unlock()
	if current {
		m.HandleDisconnect()
	}
}

// beat pings when the channel has been idle for more than half the interval
func (m *ConnectionManager) beat(gen int) {
	m.mu.Lock()
	if m.destroyed || gen != m.generation || m.channel == nil {
		m.mu.Unlock()
		return
	}
	ch := m.channel
	idle := m.opts.Clock.Now().Sub(m.lastActivity)
	m.heartbeat = m.opts.Clock.AfterFunc(m.opts.HeartbeatInterval, func() { m.beat(gen) })
	m.mu.Unlock()

	if idle <= m.opts.HeartbeatInterval/2 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.opts.PingTimeout)
	defer cancel()
	if err := ch.Send(ctx, Ping()); err != nil {
		m.opts.Logger.Warn("realtime heartbeat failed", zap.Error(err))
		return
	}
	m.MarkActivity()
}

func (m *ConnectionManager) dropChannelLocked() Channel {
	if m.heartbeat != nil {
		m.heartbeat.Stop()
		m.heartbeat = nil
	}
	if m.unwatch != nil {
		close(m.unwatch)
		m.unwatch = nil
	}
	ch := m.channel
	m.channel = nil
	return ch
}

func (m *ConnectionManager) stopTimersLocked() {
	if m.heartbeat != nil {
		m.heartbeat.Stop()
		m.heartbeat = nil
	}
	if m.reconnect != nil {
		m.reconnect.Stop()
		m.reconnect = nil
	}
}
