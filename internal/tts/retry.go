package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
)

// retryEngine wraps an Engine with bounded retries and exponential backoff
// for transient failures. Terminal failures (auth, quota, bad request) pass
// through on the first attempt.
type retryEngine struct {
	inner    Engine
	attempts int
	base     time.Duration
	log      logger.Logger
}

// WithRetry decorates an engine. attempts is the total number of tries; base
// is the first backoff delay, doubled after every failed attempt.
func WithRetry(inner Engine, attempts int, base time.Duration, log logger.Logger) Engine {
	if attempts < 1 {
		attempts = 1
	}
	return &retryEngine{inner: inner, attempts: attempts, base: base, log: log}
}

func (e *retryEngine) Name() string { return e.inner.Name() }

func (e *retryEngine) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	delay := e.base

	var lastErr error
	attempt := 1
	for ; attempt <= e.attempts; attempt++ {
		audio, err := e.inner.Synthesize(ctx, req)
		if err == nil {
			return audio, nil
		}
		lastErr = err

		if !Transient(err) || attempt == e.attempts {
			break
		}

		e.log.Warn(ctx, "synthesis attempt %d/%d failed, retrying in %s: %v", attempt, e.attempts, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay *= 2
	}

	return nil, fmt.Errorf("after %d attempt(s): %w", attempt, lastErr)
}
