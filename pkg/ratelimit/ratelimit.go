package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a process-local fixed-window rate limiter. Each key keeps a
// count and a window start; the count resets when the window elapses.
// Not shared across instances: it is an optimization, not a correctness
// mechanism.
type Limiter struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// New creates a limiter. A nil clock uses time.Now.
func New(now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		now:     now,
		windows: make(map[string]*window),
	}
}

// Allow records a hit for key and reports whether it stays within limit
// hits per windowSize.
func (l *Limiter) Allow(key string, limit int, windowSize time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		if len(l.windows) > 0 && len(l.windows)%1024 == 0 {
			l.sweep(now)
		}
		l.windows[key] = &window{count: 1, resetAt: now.Add(windowSize)}
		return limit >= 1
	}

	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many hits key has left in its current window.
func (l *Limiter) Remaining(key string, limit int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.resetAt) {
		return limit
	}
	if w.count >= limit {
		return 0
	}
	return limit - w.count
}

// sweep drops elapsed windows. Caller holds the lock.
func (l *Limiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
