// Package ratelimit implements the admission gates that sit in front of the
// identity-mutating endpoints (register, login, password change).
//
// Each gate is a token bucket: it starts full at Capacity, every admitted call
// takes one token, and tokens flow back in continuously at Refill per Interval
// until the bucket is full again. A gate is shared by every caller of its
// endpoint class; one noisy client can drain it for everybody.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/user/recipefinder-go/config"
)

// Gate is a single shared token bucket, safe for concurrent use. mu keeps a
// take-or-refuse and the token count read after it on the same bucket state.
type Gate struct {
	mu       sync.Mutex
	name     string
	capacity int
	limiter  *rate.Limiter
	now      func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock replaces time.Now, which lets tests move time forward by hand.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate builds a full bucket from cfg. cfg is expected to have been validated
// by config.LoadConfig (capacity, refill and interval all positive).
func NewGate(name string, cfg config.BucketConfig, opts ...Option) *Gate {
	every := cfg.Interval / time.Duration(cfg.Refill)
	g := &Gate{
		name:     name,
		capacity: cfg.Capacity,
		limiter:  rate.NewLimiter(rate.Every(every), cfg.Capacity),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name identifies the endpoint class in logs.
func (g *Gate) Name() string { return g.name }

// Capacity is the maximum number of tokens the bucket holds.
func (g *Gate) Capacity() int { return g.capacity }

// Admit takes one token if one is available. remaining is the number of whole
// tokens left right after that decision, so no other caller can slip in between.
// A refused call leaves the bucket untouched.
func (g *Gate) Admit() (allowed bool, remaining int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	allowed = g.limiter.AllowN(now, 1)
	return allowed, wholeTokens(g.limiter.TokensAt(now))
}

// TryConsume takes one token if one is available and reports whether it did.
func (g *Gate) TryConsume() bool {
	allowed, _ := g.Admit()
	return allowed
}

// Available reports how many whole tokens are currently in the bucket.
func (g *Gate) Available() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return wholeTokens(g.limiter.TokensAt(g.now()))
}

func wholeTokens(tokens float64) int {
	if tokens < 0 {
		return 0
	}
	return int(math.Floor(tokens))
}

// RetryAfter estimates how long until the next token is available.
func (g *Gate) RetryAfter() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	tokens := g.limiter.TokensAt(g.now())
	if tokens >= 1 {
		return 0
	}
	perSecond := float64(g.limiter.Limit())
	if perSecond <= 0 {
		return 0
	}
	return time.Duration((1 - tokens) / perSecond * float64(time.Second))
}

// Gates groups the buckets for each guarded endpoint class.
type Gates struct {
	Register         *Gate
	Login            *Gate
	CredentialChange *Gate
}

// NewGates builds one independent gate per endpoint class.
func NewGates(cfg *config.RateLimitConfig, opts ...Option) *Gates {
	return &Gates{
		Register:         NewGate("register", cfg.Register, opts...),
		Login:            NewGate("login", cfg.Login, opts...),
		CredentialChange: NewGate("credential-change", cfg.CredentialChange, opts...),
	}
}
