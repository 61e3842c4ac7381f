package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryThrottleDropsExpiredWindows(t *testing.T) {
	now := time.Date(2030, 5, 17, 8, 0, 0, 0, time.UTC)
	m := NewMemoryThrottle()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for _, email := range []string{"a@club.com", "b@club.com", "a@club.com"} {
		_, err := m.RegisterLoginFailure(ctx, email, time.Minute)
		require.NoError(t, err)
	}
	count, err := m.LoginFailures(ctx, "A@Club.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	now = now.Add(2 * time.Minute)
	count, err = m.RegisterLoginFailure(ctx, "c@club.com", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, m.failures, 1)

	count, err = m.LoginFailures(ctx, "a@club.com")
	require.NoError(t, err)
	assert.Zero(t, count)
}
