package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

type window struct {
	count int
	until time.Time
}

// fixedWindowLimiter allows limit requests per client per window.
type fixedWindowLimiter struct {
	mu        sync.Mutex
	limit     int
	per       time.Duration
	now       func() time.Time
	windows   map[string]*window
	lastSweep time.Time
}

func newFixedWindowLimiter(limit int, per time.Duration, now func() time.Time) *fixedWindowLimiter {
	return &fixedWindowLimiter{limit: limit, per: per, now: now, windows: make(map[string]*window)}
}

// allow records one request for key. When the limit is exhausted it returns
// false and the time left until the window resets.
func (l *fixedWindowLimiter) allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	w, ok := l.windows[key]
	if !ok || now.After(w.until) {
		w = &window{until: now.Add(l.per)}
		l.windows[key] = w
	}
	if w.count >= l.limit {
		return false, w.until.Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops expired windows at most once per window length.
func (l *fixedWindowLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.per {
		return
	}
	for key, w := range l.windows {
		if now.After(w.until) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects clients that exceed limit requests per window with 429
// and a Retry-After header.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	return rateLimit(newFixedWindowLimiter(limit, per, time.Now))
}

func rateLimit(l *fixedWindowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := l.allow(clientIPForRateLimit(r))
			if !ok {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "rate_limited",
					"message": "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIPForRateLimit keys on RemoteAddr only. Forwarding headers are
// resolved upstream by chi's RealIP middleware.
func clientIPForRateLimit(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
