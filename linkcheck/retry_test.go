package linkcheck

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	logger := slog.Default()

	t.Run("first attempt succeeds", func(t *testing.T) {
		attempts, err := retryWithBackoff(context.Background(), logger, 3, time.Millisecond, func() error { return nil })
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("eventual success", func(t *testing.T) {
		calls := 0
		attempts, err := retryWithBackoff(context.Background(), logger, 5, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("temporary error")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("all attempts fail", func(t *testing.T) {
		expected := errors.New("persistent error")
		attempts, err := retryWithBackoff(context.Background(), logger, 3, time.Millisecond, func() error { return expected })
		assert.Equal(t, expected, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("invalid max attempts", func(t *testing.T) {
		_, err := retryWithBackoff(context.Background(), logger, 0, time.Millisecond, func() error { return nil })
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := retryWithBackoff(ctx, logger, 10, time.Millisecond, func() error {
			calls++
			if calls == 2 {
				cancel()
			}
			return errors.New("error")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, calls)
	})

	t.Run("delay doubles", func(t *testing.T) {
		var stamps []time.Time
		_, _ = retryWithBackoff(context.Background(), logger, 3, 20*time.Millisecond, func() error {
			stamps = append(stamps, time.Now())
			return errors.New("error")
		})
		require.Len(t, stamps, 3)
		assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 20*time.Millisecond)
		assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 40*time.Millisecond)
	})
}
