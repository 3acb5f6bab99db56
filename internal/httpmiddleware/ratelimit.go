package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// staleAfter is how long an idle client's bucket survives before eviction.
const staleAfter = 10 * time.Minute

// maxTracked caps the client map; above it, stale buckets are swept on the
// next request.
const maxTracked = 4096

// TokenBucket is an in-memory per-client-IP rate limiter. Probe paths such
// as /healthz and /metrics are registered as exempt so scrapers never burn
// caller budget.
type TokenBucket struct {
	capacity int
	rate     int
	exempt   map[string]bool
	mu       sync.Mutex
	state    map[string]*bucket
	now      func() time.Time
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewTokenBucket creates a limiter with capacity tokens refilled at rate per
// minute. exemptPaths bypass the limiter entirely.
func NewTokenBucket(capacity, perMinute int, exemptPaths ...string) *TokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}
	return &TokenBucket{
		capacity: capacity,
		rate:     perMinute,
		exempt:   exempt,
		state:    make(map[string]*bucket),
		now:      time.Now,
	}
}

// GinMiddleware returns a gin handler enforcing per-IP limits.
func (l *TokenBucket) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.exempt[c.Request.URL.Path] {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit"})
			return
		}
		c.Next()
	}
}

func (l *TokenBucket) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if len(l.state) > maxTracked {
		l.evictStale(now)
	}

	b, ok := l.state[key]
	if !ok {
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true
	}
	elapsed := now.Sub(b.last).Minutes()
	refill := int(elapsed * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (l *TokenBucket) evictStale(now time.Time) {
	for k, b := range l.state {
		if now.Sub(b.last) > staleAfter {
			delete(l.state, k)
		}
	}
}
