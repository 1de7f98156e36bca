// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter manages rate limiting for multiple clients, one bucket per
// client, endpoint and method.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	now     func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = NewConfig(true, 30, 5, "")
	}

	limiter := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Path:   "*",
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	// Unmatched paths share the default bucket per client
	key := clientID + ":" + endpointConfig.Path + ":" + method
	lim := l.getBucket(key, endpointConfig, now)

	burst := lim.Burst()
	every := endpointConfig.Window / time.Duration(endpointConfig.Limit)

	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return false, Info{Limit: endpointConfig.Limit, ResetTime: now.Add(endpointConfig.Window), RetryAfter: endpointConfig.Window}
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, Info{
			Allowed:    false,
			Limit:      endpointConfig.Limit,
			Remaining:  0,
			ResetTime:  resetTime(now, lim.TokensAt(now), burst, every),
			RetryAfter: delay,
		}
	}

	tokens := lim.TokensAt(now)
	return true, Info{
		Allowed:   true,
		Limit:     endpointConfig.Limit,
		Remaining: max(0, int(tokens)),
		ResetTime: resetTime(now, tokens, burst, every),
	}
}

// resetTime is when the bucket will be full again
func resetTime(now time.Time, tokens float64, burst int, every time.Duration) time.Time {
	missing := float64(burst) - tokens
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing * float64(every)))
}

func (l *Limiter) getBucket(key string, cfg *EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.lastAccess = now
		return b.limiter
	}

	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}
	every := cfg.Window / time.Duration(cfg.Limit)
	b := &bucket{limiter: rate.NewLimiter(rate.Every(every), capacity), lastAccess: now}
	l.buckets[key] = b
	return b.limiter
}

// cleanup removes old unused buckets to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets that haven't been accessed in over an hour.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker == nil {
		return
	}
	l.stopOnce.Do(func() {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	})
}
