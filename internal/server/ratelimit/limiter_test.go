package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)
	defer l.Close()

	for i := range 3 {
		ok, _ := l.Allow("peer")
		assert.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, retry := l.Allow("peer")
	assert.False(t, ok)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, time.Second)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)
	defer l.Close()

	ok, _ := l.Allow("a")
	require.True(t, ok)
	ok, _ = l.Allow("a")
	require.False(t, ok)

	ok, _ = l.Allow("b")
	assert.True(t, ok)
}

func TestLimiter_Refills(t *testing.T) {
	l := NewLimiter(10, 1)
	defer l.Close()

	clock := time.Now()
	l.now = func() time.Time { return clock }

	ok, _ := l.Allow("peer")
	require.True(t, ok)
	ok, _ = l.Allow("peer")
	require.False(t, ok)

	clock = clock.Add(150 * time.Millisecond)
	ok, _ = l.Allow("peer")
	assert.True(t, ok)
}

func TestLimiter_ZeroBurstIsRaised(t *testing.T) {
	l := NewLimiter(1, 0)
	defer l.Close()

	ok, _ := l.Allow("peer")
	assert.True(t, ok)
}

func TestLimiter_CleanupDropsIdleFullBuckets(t *testing.T) {
	l := NewLimiter(100, 1)
	defer l.Close()

	clock := time.Now()
	l.now = func() time.Time { return clock }

	l.Allow("idle")
	clock = clock.Add(staleAfter + time.Minute)
	l.Allow("busy")

	l.cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.buckets, "idle")
	assert.Contains(t, l.buckets, "busy")
}

func TestLimiter_CloseTwice(t *testing.T) {
	l := NewLimiter(1, 1)
	l.Close()
	assert.NotPanics(t, l.Close)
}
