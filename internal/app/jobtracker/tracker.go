// Package jobtracker follows a meeting's transcription until it reaches a terminal state.
package jobtracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/model"
)

// DefaultInterval between status checks
const DefaultInterval = 5 * time.Second

// DefaultMaxErrors is how many consecutive failed checks end tracking
const DefaultMaxErrors = 3

// Status is one observation of a job
type Status struct {
	Status model.TranscriptionStatus `json:"status"`
	Error  string                    `json:"error,omitempty"`
}

// API is the server surface the tracker drives
type API interface {
	StartTranscription(ctx context.Context, meetingID string) (*Status, error)
	TranscriptionStatus(ctx context.Context, meetingID string) (*Status, error)
}

// Options configures a Tracker
type Options struct {
	Interval  time.Duration
	MaxErrors int
	// OnChange is called with every distinct status, including the terminal one
	OnChange func(Status)
	Clock    clock.Clock
	Logger   *zap.Logger
}

// Tracker polls one meeting. It stops exactly once: on a terminal status, when the
// server reports no job, after MaxErrors consecutive failures, on Stop, or when its context ends.
type Tracker struct {
	api       API
	meetingID string
	opts      Options

	mu       sync.Mutex
	current  Status
	timer    clock.Timer
	errors   int
	stopped  bool
	stopOnce sync.Once
	done     chan struct{}
	cancel   context.CancelFunc
}

// New creates an idle tracker
func New(api API, meetingID string, opts Options) *Tracker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = DefaultMaxErrors
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Logger = opts.Logger.Named("jobtracker").With(zap.String("meeting_id", meetingID))

	return &Tracker{
		api:       api,
		meetingID: meetingID,
		opts:      opts,
		current:   Status{Status: model.StatusIdle},
		done:      make(chan struct{}),
	}
}

// Start submits the job when submit is set, then polls until a terminal state.
// A rejected submission (for example a job already running) is reported as an error status.
func (t *Tracker) Start(ctx context.Context, submit bool) {
	ctx, cancel := context.WithCancel(ctx)
	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.done:
		}
	}()

	if submit {
		st, err := t.api.StartTranscription(ctx, t.meetingID)
		if err != nil {
			t.opts.Logger.Warn("failed to start transcription", zap.Error(err))
			t.finish(Status{Status: model.StatusError, Error: err.Error()})
			return
		}
		if t.observe(*st) {
			return
		}
	}

	t.poll(ctx)
}

// Stop cancels the pending poll; it is safe to call repeatedly
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		t.stopped = true
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
		}
		cancel := t.cancel
		t.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		close(t.done)
	})
}

// Done is closed once tracking has ended
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}

// Current returns the last observed status
func (t *Tracker) Current() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *Tracker) poll(ctx context.Context) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	st, err := t.api.TranscriptionStatus(ctx, t.meetingID)
	if err != nil {
		t.mu.Lock()
		t.errors++
		failures := t.errors
		t.mu.Unlock()

		t.opts.Logger.Warn("status check failed", zap.Int("consecutive_failures", failures), zap.Error(err))
		if failures >= t.opts.MaxErrors {
			t.finish(Status{Status: model.StatusError, Error: err.Error()})
			return
		}
		t.schedule(ctx)
		return
	}

	t.mu.Lock()
	t.errors = 0
	t.mu.Unlock()

	// no job on the server: nothing will ever change without a new submission
	if st.Status == model.StatusIdle {
		t.finish(*st)
		return
	}
	if t.observe(*st) {
		return
	}
	t.schedule(ctx)
}

func (t *Tracker) schedule(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.timer = t.opts.Clock.AfterFunc(t.opts.Interval, func() { t.poll(ctx) })
}

// observe records st and reports whether tracking finished
func (t *Tracker) observe(st Status) bool {
	if st.Status.Terminal() {
		t.finish(st)
		return true
	}

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return true
	}
	changed := t.current != st
	t.current = st
	t.mu.Unlock()

	if changed && t.opts.OnChange != nil {
		t.opts.OnChange(st)
	}
	return false
}

func (t *Tracker) finish(st Status) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.current = st
	t.mu.Unlock()

	t.opts.Logger.Info("transcription tracking finished", zap.String("status", string(st.Status)))
	if t.opts.OnChange != nil {
		t.opts.OnChange(st)
	}
	t.Stop()
}
