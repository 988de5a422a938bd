package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterEntry holds a rate limiter with last used timestamp
type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// KeyRateLimiter manages per-key rate limiters with automatic cleanup
type KeyRateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewKeyRateLimiter creates a limiter and starts its cleanup goroutine.
// Call Stop to release it.
func NewKeyRateLimiter(limit rate.Limit, burst int) *KeyRateLimiter {
	k := &KeyRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
		idleTTL:  10 * time.Minute,
		stopCh:   make(chan struct{}),
	}
	go k.cleanupLoop()
	return k
}

// Allow reports whether one more event for key fits the budget
func (k *KeyRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	entry, ok := k.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = entry
	}
	entry.lastUsed = time.Now()
	k.mu.Unlock()

	return entry.limiter.Allow()
}

// cleanupLoop removes stale entries every 5 minutes
func (k *KeyRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			k.cleanup(time.Now())
		case <-k.stopCh:
			return
		}
	}
}

// cleanup removes entries not used within idleTTL of now
func (k *KeyRateLimiter) cleanup(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := now.Add(-k.idleTTL)
	for key, entry := range k.limiters {
		if entry.lastUsed.Before(cutoff) {
			delete(k.limiters, key)
		}
	}
}

func (k *KeyRateLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// Stop terminates the cleanup goroutine
func (k *KeyRateLimiter) Stop() {
	k.stopOnce.Do(func() { close(k.stopCh) })
}

// RateLimitConfig defines configuration for the rate limiting middleware
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// NewIPRateLimiter builds a per-IP limiter from cfg.
// Defaults: 10 requests per minute, burst 3.
func NewIPRateLimiter(cfg RateLimitConfig) *KeyRateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 3
	}
	return NewKeyRateLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.Burst)
}

// IPRateLimitMiddleware rejects requests from a client IP over its budget.
// Used on the login and register forms.
func IPRateLimitMiddleware(limiter *KeyRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
