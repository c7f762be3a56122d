package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mstrand/itinera"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransient(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", ai.NewTransientError("rate limited", 429, nil)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", ai.NewPermanentError("invalid key", 401, nil)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, ai.IsPermanent(err))
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := ai.NewTransientError("overloaded", 529, nil)
	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", transient
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, errors.Is(err, transient))
}

func TestDoPlainErrorsNotRetried(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRespectsContextDuringBackoff(t *testing.T) {
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: time.Hour, // would block without cancellation
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (int, error) {
		return 0, ai.NewTransientError("retry", 503, nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoHonorsRetryAfter(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}

	calls := 0
	start := time.Now()
	_, err := Do(context.Background(), cfg, func() (int, error) {
		calls++
		if calls == 1 {
			return 0, ai.NewTransientErrorWithRetry("rate limited", 429, 50*time.Millisecond, nil)
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestConfigDelay(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	// Capped at MaxDelay
	assert.Equal(t, 10*time.Second, cfg.Delay(10))
	// Negative attempts clamp to zero
	assert.Equal(t, time.Second, cfg.Delay(-1))
}

func TestConfigDelayJitterBounds(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
		Jitter:       0.1,
	}

	for i := 0; i < 100; i++ {
		d := cfg.Delay(0)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
}

func TestDisabled(t *testing.T) {
	assert.Equal(t, 1, Disabled().MaxAttempts)
}
