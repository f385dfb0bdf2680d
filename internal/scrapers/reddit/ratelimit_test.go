package reddit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacingLimiter_DisabledIntervalDoesNotBlock(t *testing.T) {
	limiter := NewPacingLimiter(0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacingLimiter_SpacesRequests(t *testing.T) {
	limiter := NewPacingLimiter(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	require.NoError(t, limiter.Wait(context.Background()))
	require.NoError(t, limiter.Wait(context.Background()))

	// The first request spends the burst token, so two more take at
	// least two intervals.
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestPacingLimiter_BackoffWindowBlocks(t *testing.T) {
	limiter := NewPacingLimiter(0)
	limiter.RecordRateLimitError(60 * time.Millisecond)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestPacingLimiter_KeepsLaterBackoff(t *testing.T) {
	limiter := NewPacingLimiter(0)
	limiter.RecordRateLimitError(80 * time.Millisecond)
	limiter.RecordRateLimitError(10 * time.Millisecond)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestPacingLimiter_WaitCancelledDuringBackoff(t *testing.T) {
	limiter := NewPacingLimiter(0)
	limiter.RecordRateLimitError(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
