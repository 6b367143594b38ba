package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
)

// limiter is a sliding-window counter per client IP.
type limiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	span    time.Duration
}

type window struct {
	count int
	until time.Time
}

func newLimiter(limit int, span time.Duration) *limiter {
	l := &limiter{entries: make(map[string]*window), limit: limit, span: span}
	go l.purge()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.entries[ip]
	if !ok || now.After(w.until) {
		w = &window{until: now.Add(l.span)}
		l.entries[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.until
}

// purge drops expired windows so IPs that never return don't accumulate.
func (l *limiter) purge() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.entries {
			if now.After(w.until) {
				delete(l.entries, ip)
			}
		}
		l.mu.Unlock()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	l := newLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general API limiter.
func RateLimiter(limit int, span time.Duration) gin.HandlerFunc {
	l := newLimiter(limit, span)
	return func(c *gin.Context) {
		ok, until := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
