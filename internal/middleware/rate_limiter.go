package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/lisalescano/back-mapp/internal/apierror"

	"github.com/gin-gonic/gin"
)

// windowEntry tracks request counts per IP within a sliding window.
type windowEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// ipLimiter is a sliding-window per-IP counter. One instance per configured
// limit, so the global API limiter and the stricter login limiter do not
// share state.
type ipLimiter struct {
	limit   int
	window  time.Duration
	entries map[string]*windowEntry
	mu      sync.Mutex
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	l := &ipLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*windowEntry),
	}
	go l.purgeLoop()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	entry, ok := l.entries[ip]
	if !ok {
		entry = &windowEntry{}
		l.entries[ip] = entry
	}
	l.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(l.window)
	}
	entry.count++
	return entry.count <= l.limit
}

// purgeLoop removes expired entries so IPs that never return do not
// accumulate forever.
func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, entry := range l.entries {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(l.entries, ip)
			}
			entry.mu.Unlock()
		}
		l.mu.Unlock()
	}
}

// RateLimiter returns a general-purpose per-IP limiter for the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits credential attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	l := newIPLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}
