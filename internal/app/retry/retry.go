// Package retry wraps fallible calls with bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// Defaults used by DefaultOptions
const (
	DefaultMaxRetries        = 3
	DefaultInitialDelay      = time.Second
	DefaultMaxDelay          = 10 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Options controls how many times and how quickly an operation is retried
type Options struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	ShouldRetry       func(error) bool

	// OnRetry is called before each wait with the failed attempt number (1-based)
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultOptions returns 3 retries starting at 1s, doubling up to 10s, for transient errors
func DefaultOptions() Options {
	return Options{
		MaxRetries:        DefaultMaxRetries,
		InitialDelay:      DefaultInitialDelay,
		MaxDelay:          DefaultMaxDelay,
		BackoffMultiplier: DefaultBackoffMultiplier,
		ShouldRetry:       IsTransient,
	}
}

// Do calls op until it succeeds, the predicate rejects the error, retries are exhausted
// or ctx is done. At most MaxRetries+1 attempts are made and the last error from op is
// returned unchanged.
func Do(ctx context.Context, op func(ctx context.Context) error, opts Options) error {
	if opts.ShouldRetry == nil {
		opts.ShouldRetry = IsTransient
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.BackoffMultiplier <= 0 {
		opts.BackoffMultiplier = DefaultBackoffMultiplier
	}

	delay := opts.InitialDelay
	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == opts.MaxRetries || !opts.ShouldRetry(lastErr) {
			return lastErr
		}

		wait := delay
		if wait > opts.MaxDelay {
			wait = opts.MaxDelay
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt+1, wait, lastErr)
		}
		if err := sleep(ctx, wait); err != nil {
			return lastErr
		}
		delay = time.Duration(float64(delay) * opts.BackoffMultiplier)
	}
	return lastErr
}

// DoValue is Do for operations that produce a result
func DoValue[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts Options) (T, error) {
	var result T
	err := Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	}, opts)
	return result, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retryable is implemented by errors that know whether they are worth retrying
type Retryable interface {
	IsRetryable() bool
}

var transientMarkers = []string{
	"timeout",
	"timed out",
	"connection reset",
	"connection refused",
	"econnreset",
	"etimedout",
	"econnrefused",
	"network",
	"fetch failed",
	"broken pipe",
	"eof",
	"502",
	"503",
	"504",
	"bad gateway",
	"service unavailable",
	"gateway timeout",
	"temporarily unavailable",
	"too many requests",
}

// IsTransient reports whether err looks like a network-class failure worth retrying
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var r Retryable
	if errors.As(err, &r) {
		return r.IsRetryable()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
