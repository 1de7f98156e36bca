package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(perHour, burst int) (*Limiter, *time.Time) {
	cfg := NewConfig(true, perHour, burst, "10.0.0.9")
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := testLimiter(10, 3)

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/generate", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/generate", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 6*time.Minute, info.RetryAfter)
	assert.Equal(t, 0, info.Remaining)
}

func TestLimiter_Refill(t *testing.T) {
	l, now := testLimiter(10, 1)

	allowed, _ := l.Allow("1.2.3.4", "/generate", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/generate", "POST")
	require.False(t, allowed)

	*now = now.Add(6 * time.Minute)
	allowed, _ = l.Allow("1.2.3.4", "/generate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_SeparateClientsAndEndpoints(t *testing.T) {
	l, _ := testLimiter(10, 1)

	allowed, _ := l.Allow("1.2.3.4", "/generate", "POST")
	require.True(t, allowed)

	allowed, _ = l.Allow("5.6.7.8", "/generate", "POST")
	assert.True(t, allowed, "other client has its own bucket")

	allowed, _ = l.Allow("1.2.3.4", "/generate/stream", "POST")
	assert.True(t, allowed, "stream endpoint has its own bucket")
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := testLimiter(1, 1)

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	l, _ := testLimiter(1, 1)

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/generate", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(NewConfig(false, 1, 1, ""))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/generate", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_DefaultBucketSharedAcrossPaths(t *testing.T) {
	cfg := NewConfig(true, 10, 1, "")
	cfg.CleanupInterval = 0
	cfg.DefaultLimit = 1
	l := NewLimiter(cfg)

	allowed, _ := l.Allow("1.2.3.4", "/", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/anything", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := testLimiter(100, 20)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("1.2.3.4", "/generate", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, allowedCount)
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	l, now := testLimiter(10, 1)
	l.Allow("1.2.3.4", "/generate", "POST")

	*now = now.Add(2 * time.Hour)
	l.cleanupBuckets()

	assert.Empty(t, l.buckets)
}

func TestMatchEndpoint(t *testing.T) {
	configs := GenerationEndpointConfigs(10, 2)

	assert.Equal(t, "/generate", MatchEndpoint("/generate", "POST", configs).Path)
	assert.Equal(t, "/generate/stream", MatchEndpoint("/generate/stream", "POST", configs).Path)
	assert.Equal(t, "/results/", MatchEndpoint("/results/resume.pdf", "GET", configs).Path)
	assert.Nil(t, MatchEndpoint("/generate", "GET", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}
