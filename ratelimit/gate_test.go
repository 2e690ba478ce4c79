package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recipefinder-go/config"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestGate_CapacityThenReject(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("register", config.BucketConfig{Capacity: 3, Refill: 3, Interval: time.Minute}, WithClock(clock.Now))

	for i := 0; i < 3; i++ {
		require.Truef(t, g.TryConsume(), "call %d should be admitted", i+1)
	}
	assert.False(t, g.TryConsume(), "call beyond capacity must be rejected")
	assert.Equal(t, 0, g.Available())
}

func TestGate_RejectionLeavesBucketUnchanged(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("login", config.BucketConfig{Capacity: 1, Refill: 1, Interval: time.Minute}, WithClock(clock.Now))

	require.True(t, g.TryConsume())
	for i := 0; i < 5; i++ {
		assert.False(t, g.TryConsume())
	}

	// Repeated rejections do not push the next token further away.
	clock.Advance(time.Minute)
	assert.True(t, g.TryConsume())
}

func TestGate_RefillsAfterInterval(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("register", config.BucketConfig{Capacity: 10, Refill: 10, Interval: time.Minute}, WithClock(clock.Now))

	for i := 0; i < 10; i++ {
		require.True(t, g.TryConsume())
	}
	require.False(t, g.TryConsume())

	clock.Advance(time.Minute)
	assert.Equal(t, 10, g.Available())
	for i := 0; i < 10; i++ {
		assert.True(t, g.TryConsume())
	}
	assert.False(t, g.TryConsume())
}

func TestGate_GreedyRefillIsContinuous(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("login", config.BucketConfig{Capacity: 10, Refill: 10, Interval: time.Minute}, WithClock(clock.Now))

	for i := 0; i < 10; i++ {
		require.True(t, g.TryConsume())
	}

	// One token every six seconds.
	clock.Advance(7 * time.Second)
	assert.True(t, g.TryConsume())
	assert.False(t, g.TryConsume())
}

func TestGate_NeverExceedsCapacity(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("login", config.BucketConfig{Capacity: 2, Refill: 1, Interval: time.Second}, WithClock(clock.Now))

	clock.Advance(time.Hour)
	assert.Equal(t, 2, g.Available())
}

func TestGate_RetryAfter(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("register", config.BucketConfig{Capacity: 1, Refill: 1, Interval: time.Minute}, WithClock(clock.Now))

	assert.Zero(t, g.RetryAfter())
	require.True(t, g.TryConsume())

	wait := g.RetryAfter()
	assert.InDelta(t, time.Minute.Seconds(), wait.Seconds(), 1)
}

func TestGate_ConcurrentCallersShareOneBucket(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("register", config.BucketConfig{Capacity: 25, Refill: 1, Interval: time.Hour}, WithClock(clock.Now))

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryConsume() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(25), admitted.Load())
}

func TestNewGates_IndependentBuckets(t *testing.T) {
	clock := newFakeClock()
	gates := NewGates(&config.RateLimitConfig{
		Register:         config.BucketConfig{Capacity: 1, Refill: 1, Interval: time.Minute},
		Login:            config.BucketConfig{Capacity: 2, Refill: 1, Interval: time.Minute},
		CredentialChange: config.BucketConfig{Capacity: 3, Refill: 1, Interval: time.Minute},
	}, WithClock(clock.Now))

	require.True(t, gates.Register.TryConsume())
	assert.False(t, gates.Register.TryConsume())

	// Draining register leaves the others alone.
	assert.Equal(t, 2, gates.Login.Available())
	assert.Equal(t, 3, gates.CredentialChange.Available())

	assert.Equal(t, "register", gates.Register.Name())
	assert.Equal(t, "login", gates.Login.Name())
	assert.Equal(t, "credential-change", gates.CredentialChange.Name())
}

func TestGate_AdmitReportsRemainingAfterDecision(t *testing.T) {
	clock := newFakeClock()
	g := NewGate("login", config.BucketConfig{Capacity: 2, Refill: 2, Interval: time.Minute}, WithClock(clock.Now))

	allowed, remaining := g.Admit()
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining = g.Admit()
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, remaining = g.Admit()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}
