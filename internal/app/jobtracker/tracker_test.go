package jobtracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/model"
)

type scriptedAPI struct {
	mu       sync.Mutex
	startErr error
	statuses []model.TranscriptionStatus
	errs     []error
	checks   int
	starts   int
}

func (a *scriptedAPI) StartTranscription(context.Context, string) (*Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.starts++
	if a.startErr != nil {
		return nil, a.startErr
	}
	return &Status{Status: model.StatusQueued}, nil
}

func (a *scriptedAPI) TranscriptionStatus(context.Context, string) (*Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.checks
	a.checks++
	if i < len(a.errs) && a.errs[i] != nil {
		return nil, a.errs[i]
	}
	if i >= len(a.statuses) {
		return &Status{Status: a.statuses[len(a.statuses)-1]}, nil
	}
	return &Status{Status: a.statuses[i]}, nil
}

func (a *scriptedAPI) checkCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checks
}

func newTracker(api API, fc *clock.Fake, seen *[]model.TranscriptionStatus) *Tracker {
	return New(api, "m-1", Options{
		Clock:    fc,
		OnChange: func(s Status) { *seen = append(*seen, s.Status) },
	})
}

func TestTrackerPollsUntilCompleted(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	api := &scriptedAPI{statuses: []model.TranscriptionStatus{
		model.StatusQueued, model.StatusProcessing, model.StatusProcessing, model.StatusCompleted,
	}}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	tr.Start(context.Background(), true)
	assert.Equal(t, 1, api.starts)
	assert.Equal(t, 1, api.checkCount())

	fc.Advance(4 * time.Second)
	assert.Equal(t, 1, api.checkCount())

	fc.Advance(15 * time.Second)
	assert.Equal(t, 4, api.checkCount())

	select {
	case <-tr.Done():
	default:
		t.Fatal("tracker should be done")
	}
	assert.Equal(t, []model.TranscriptionStatus{model.StatusQueued, model.StatusProcessing, model.StatusCompleted}, seen)
	assert.Equal(t, model.StatusCompleted, tr.Current().Status)

	// no dangling interval
	assert.Equal(t, 0, fc.Pending())
	fc.Advance(time.Minute)
	assert.Equal(t, 4, api.checkCount())
}

func TestTrackerStopsOnProviderError(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	api := &scriptedAPI{statuses: []model.TranscriptionStatus{model.StatusProcessing, model.StatusError}}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	tr.Start(context.Background(), false)
	fc.Advance(5 * time.Second)

	assert.Equal(t, model.StatusError, tr.Current().Status)
	assert.Equal(t, 0, fc.Pending())
	assert.Equal(t, 0, api.starts)
}

func TestTrackerStartRejected(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	api := &scriptedAPI{startErr: errors.New("Transcription already in progress")}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	tr.Start(context.Background(), true)

	assert.Equal(t, model.StatusError, tr.Current().Status)
	assert.Equal(t, "Transcription already in progress", tr.Current().Error)
	assert.Equal(t, 0, api.checkCount())
}

func TestTrackerGivesUpAfterConsecutiveErrors(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	boom := errors.New("network down")
	api := &scriptedAPI{
		statuses: []model.TranscriptionStatus{model.StatusProcessing},
		errs:     []error{nil, boom, boom, boom},
	}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	tr.Start(context.Background(), false)
	fc.Advance(time.Minute)

	assert.Equal(t, 4, api.checkCount())
	assert.Equal(t, model.StatusError, tr.Current().Status)
	assert.Equal(t, 0, fc.Pending())
}

func TestTrackerStopIsIdempotent(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	api := &scriptedAPI{statuses: []model.TranscriptionStatus{model.StatusProcessing}}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	tr.Start(context.Background(), false)
	require.Equal(t, 1, fc.Pending())

	tr.Stop()
	tr.Stop()
	assert.Equal(t, 0, fc.Pending())

	fc.Advance(time.Minute)
	assert.Equal(t, 1, api.checkCount())
}

func TestTrackerStopsWhenContextEnds(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	api := &scriptedAPI{statuses: []model.TranscriptionStatus{model.StatusProcessing}}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	ctx, cancel := context.WithCancel(context.Background())
	tr.Start(ctx, false)
	cancel()

	select {
	case <-tr.Done():
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop")
	}
	assert.Equal(t, 0, fc.Pending())
}

func TestTrackerStopsWhenNoJobExists(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	api := &scriptedAPI{statuses: []model.TranscriptionStatus{model.StatusIdle}}
	var seen []model.TranscriptionStatus
	tr := newTracker(api, fc, &seen)

	tr.Start(context.Background(), false)

	select {
	case <-tr.Done():
	default:
		t.Fatal("tracker should be done")
	}
	assert.Equal(t, []model.TranscriptionStatus{model.StatusIdle}, seen)
	assert.Equal(t, 0, fc.Pending())

	fc.Advance(time.Minute)
	assert.Equal(t, 1, api.checkCount())
}
