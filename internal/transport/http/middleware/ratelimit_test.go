package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	current := time.Now()
	limiter.now = func() time.Time { return current }

	if !limiter.allow("ip:10.0.0.2") {
		t.Fatal("first request should pass")
	}
	if limiter.allow("ip:10.0.0.2") {
		t.Fatal("second request in window should be blocked")
	}

	current = current.Add(2 * time.Minute)
	if !limiter.allow("ip:10.0.0.2") {
		t.Fatal("request after window reset should pass")
	}
}

func TestRateLimiterEvictsStaleWindows(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	current := time.Now()
	limiter.now = func() time.Time { return current }

	limiter.allow("ip:10.0.0.5")
	limiter.allow("ip:10.0.0.6")

	current = current.Add(3 * time.Minute)
	limiter.allow("ip:10.0.0.7")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.windows) != 1 {
		t.Fatalf("expected stale windows evicted, have %d entries", len(limiter.windows))
	}
	if _, ok := limiter.windows["ip:10.0.0.7"]; !ok {
		t.Fatal("expected the live window to survive the sweep")
	}
}

func TestRateLimiterSeparateActors(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	if !limiter.allow("ip:10.0.0.3") {
		t.Fatal("first actor should pass")
	}
	if !limiter.allow("ip:10.0.0.4") {
		t.Fatal("second actor should not share the first window")
	}
}
