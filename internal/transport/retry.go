package transport

import (
	"context"
	"math/rand"
	"time"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/logging"
)

// RetryConfig bounds the retry loop for source calls.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns the engine's retry defaults: try a few
// times with a doubling backoff, then give up.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       constants.MaxRetries,
		BackoffBase:       constants.RetryBackoff,
		BackoffMultiplier: 2.0,
		MaxBackoff:        constants.MaxRetryBackoff,
	}
}

// Retry runs fn until it succeeds, fails with a non-retryable error, or
// attempts run out. Only transient and rate-limit fetch failures are
// replayed; client errors, parse failures, and cancellation return
// immediately.
func Retry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !errors.IsRetryable(err) {
			return err
		}

		if attempt < cfg.MaxAttempts {
			backoff := backoffFor(cfg, attempt)
			logging.Debug().
				Int("attempt", attempt).
				Int("max_attempts", cfg.MaxAttempts).
				Dur("backoff", backoff).
				Err(err).
				Msg("source call failed, retrying")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}

// backoffFor computes the exponential backoff with jitter. Jitter
// prevents synchronized retries against a rate-limiting endpoint.
func backoffFor(cfg RetryConfig, attempt int) time.Duration {
	multiplier := 1.0
	for i := 1; i < attempt; i++ {
		multiplier *= cfg.BackoffMultiplier
	}

	backoff := time.Duration(float64(cfg.BackoffBase) * multiplier)
	if backoff > cfg.MaxBackoff {
		backoff = cfg.MaxBackoff
	}

	jitter := float64(backoff) * 0.25 * (rand.Float64()*2 - 1)
	return backoff + time.Duration(jitter)
}
