package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles document reads per directory, so a batch over a network
// share or a slow mount does not saturate it.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter. readsPerSecond <= 0 disables throttling.
func NewLimiter(readsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Inf
	if readsPerSecond > 0 {
		limit = rate.Limit(readsPerSecond)
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until a read of path is allowed
func (l *Limiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(sourceKey(path)).Wait(ctx)
}

// Allow checks if a read of path is allowed without waiting
func (l *Limiter) Allow(path string) bool {
	return l.getLimiter(sourceKey(path)).Allow()
}

// getLimiter returns the rate limiter for a directory
func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter

	return limiter
}

// SetSourceRate sets a custom rate for every document under dir
func (l *Limiter) SetSourceRate(dir string, readsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[filepath.Clean(dir)] = rate.NewLimiter(rate.Limit(readsPerSecond), burst)
}

// sourceKey groups documents by their directory
func sourceKey(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
