package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(5, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		assert.False(t, limiter.IsLimited(42), "hit %d should pass", i+1)
	}
	assert.True(t, limiter.IsLimited(42))
	assert.False(t, limiter.IsLimited(7), "other users have their own window")

	now = now.Add(61 * time.Second)
	assert.False(t, limiter.IsLimited(42), "a new window starts after the period")
	assert.Equal(t, 2, limiter.Tracked())
}
