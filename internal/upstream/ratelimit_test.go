package upstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterDailyLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1000, 10, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(t.Context()))
	}

	err := rl.Wait(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Equal(t, int64(3), rl.DailyCount())
	assert.Equal(t, int64(0), rl.Remaining())
}

func TestRateLimiterWindowReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1000, 10, 2, WithRateLimiterNowFunc(func() time.Time { return now }))

	require.NoError(t, rl.Wait(t.Context()))
	require.NoError(t, rl.Wait(t.Context()))
	require.ErrorIs(t, rl.Wait(t.Context()), ErrDailyLimitReached)

	// The counter resets once the 24-hour window passes.
	now = now.Add(25 * time.Hour)
	require.NoError(t, rl.Wait(t.Context()))
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiterResetAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1000, 10, 100, WithRateLimiterNowFunc(func() time.Time { return now }))

	assert.Equal(t, now.Add(24*time.Hour), rl.ResetAt())
}

func TestRateLimiterAccessors(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, 10, 5000)

	assert.Equal(t, int64(5000), rl.MaxDaily())
	assert.Equal(t, int64(0), rl.DailyCount())
	assert.Equal(t, int64(5000), rl.Remaining())
}
