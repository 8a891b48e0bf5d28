// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wneessen/meteobuf/internal/logger"
)

// ErrCircuitOpen is returned while the circuit breaker rejects requests.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Performer performs one request and returns the raw response body.
type Performer interface {
	Perform(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error)
}

// Backoff controls the exponential delay between attempts.
type Backoff struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultBackoff retries twice, starting at half a second.
var DefaultBackoff = Backoff{MaxRetries: 2, InitialInterval: 500 * time.Millisecond, MaxInterval: 5 * time.Second}

// Delay returns the wait time before retry number attempt, counting from 0.
func (b Backoff) Delay(attempt int) time.Duration {
	delay := b.InitialInterval << attempt
	if delay <= 0 || (b.MaxInterval > 0 && delay > b.MaxInterval) {
		return b.MaxInterval
	}
	return delay
}

// Resilient retries temporary failures of a Performer with exponential backoff and stops
// calling it once too many consecutive requests failed.
type Resilient struct {
	next    Performer
	breaker *gobreaker.CircuitBreaker
	backoff Backoff
	logger  *logger.Logger
}

// NewResilient wraps next. The breaker opens after failures consecutive failed attempts and
// probes again after cooldown.
func NewResilient(next Performer, backoff Backoff, failures uint32, cooldown time.Duration, log *logger.Logger) *Resilient {
	if log == nil {
		log = logger.Discard()
	}
	if failures == 0 {
		failures = 5
	}
	settings := gobreaker.Settings{
		Name:    "open-meteo",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker changed state", slog.String("breaker", name),
				slog.String("from", from.String()), slog.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !retryable(err)
		},
	}
	return &Resilient{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
		backoff: backoff,
		logger:  log,
	}
}

// Perform satisfies Performer.
func (r *Resilient) Perform(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Failures after ctx is done do not count against the breaker.
		aborted := false
		result, err := r.breaker.Execute(func() (interface{}, error) {
			data, err := r.next.Perform(ctx, method, endpoint, query)
			if err != nil && ctx.Err() != nil {
				aborted = true
				return nil, nil
			}
			return data, err
		})
		if aborted {
			return nil, ctx.Err()
		}
		if err == nil {
			data, ok := result.([]byte)
			if !ok {
				return nil, fmt.Errorf("unexpected result type %T from circuit breaker", result)
			}
			return data, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		if !retryable(err) || attempt >= r.backoff.MaxRetries {
			return nil, err
		}

		delay := r.backoff.Delay(attempt)
		r.logger.Debug("retrying request", slog.Int("attempt", attempt+1), slog.Duration("delay", delay),
			logger.Err(err))
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryable reports whether err is worth another attempt. Cancellation and client errors
// other than 429 are final. A timed out request is retried like any network failure; the
// caller's own deadline is checked before retrying.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrUnsupportedMethod) || errors.Is(err, ErrResponseTooLarge) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
