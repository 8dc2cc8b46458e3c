package transport_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityscope/orbite/internal/transport"
	"github.com/entityscope/orbite/pkg/errors"
)

func fastRetry() transport.RetryConfig {
	return transport.RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxBackoff:        5 * time.Millisecond,
	}
}

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := transport.Retry(context.Background(), fastRetry(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryReplaysTransientFailures(t *testing.T) {
	calls := 0
	err := transport.Retry(context.Background(), fastRetry(), func() error {
		calls++
		if calls < 3 {
			return &errors.FetchError{Source: "wikidata", Op: "search", Reason: errors.ReasonTransient}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryReplaysRateLimits(t *testing.T) {
	calls := 0
	err := transport.Retry(context.Background(), fastRetry(), func() error {
		calls++
		if calls == 1 {
			return &errors.FetchError{Source: "insee", Op: "search", Reason: errors.ReasonRateLimit, StatusCode: 429}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	failure := &errors.FetchError{Source: "wikidata", Op: "fetch", Reason: errors.ReasonTransient}

	err := transport.Retry(context.Background(), fastRetry(), func() error {
		calls++
		return failure
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"client error", &errors.FetchError{Source: "insee", Op: "search", Reason: errors.ReasonClient, StatusCode: 400}},
		{"parse error", &errors.FetchError{Source: "wikidata", Op: "fetch", Reason: errors.ReasonParse}},
		{"plain error", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := transport.Retry(context.Background(), fastRetry(), func() error {
				calls++
				return tt.err
			})

			require.Error(t, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastRetry()
	cfg.BackoffBase = time.Second
	cfg.MaxBackoff = time.Second

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- transport.Retry(ctx, cfg, func() error {
			calls++
			return &errors.FetchError{Source: "wikidata", Op: "search", Reason: errors.ReasonTransient}
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls, "cancellation interrupts the backoff wait")
	case <-time.After(time.Second):
		t.Fatal("retry did not stop on cancellation")
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := transport.DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.BackoffBase)
	assert.Equal(t, 30*time.Second, cfg.MaxBackoff)
}
