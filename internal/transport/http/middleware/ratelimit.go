package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"guardops/internal/transport/http/api"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter applies a fixed-window per-actor request limit. Authenticated
// callers are keyed by user id, anonymous callers by client IP.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*rateWindow
	limit     int
	period    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)
	window, ok := rl.windows[key]
	if !ok || now.After(window.resetAt) {
		rl.windows[key] = &rateWindow{count: 1, resetAt: now.Add(rl.period)}
		return true
	}
	if window.count >= rl.limit {
		return false
	}
	window.count++
	return true
}

// sweep drops expired windows so the map does not grow with every actor
// ever seen. Runs at most once per period; caller holds the lock.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.period {
		return
	}
	rl.lastSweep = now
	for key, window := range rl.windows {
		if now.After(window.resetAt) {
			delete(rl.windows, key)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.allow(key) {
			api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok {
		return "user:" + user.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
