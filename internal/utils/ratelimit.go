package utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type window struct {
	count int
	start time.Time
}

// RateLimiter is a fixed-window counter keyed by user id
type RateLimiter struct {
	limit   int
	period  time.Duration
	windows *cache.Cache
	mu      sync.Mutex
	now     func() time.Time
}

// NewRateLimiter allows limit hits per key in each period
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		windows: cache.New(period, 2*period),
		now:     time.Now,
	}
}

// IsLimited counts a hit for userID and reports whether it exceeds the window's budget
func (l *RateLimiter) IsLimited(userID int64) bool {
	key := strconv.FormatInt(userID, 10)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.windows.Get(key); ok {
		w := cached.(*window)
		if now.Sub(w.start) <= l.period {
			w.count++
			return w.count > l.limit
		}
	}

	l.windows.Set(key, &window{count: 1, start: now}, cache.DefaultExpiration)
	return false
}

// Tracked returns the number of keys with a live window
func (l *RateLimiter) Tracked() int {
	return l.windows.ItemCount()
}
