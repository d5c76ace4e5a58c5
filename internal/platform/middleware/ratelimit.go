package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"attest/pkg/platform/httputil"
)

// SlidingWindowLimiter counts requests per key over a sliding window. It is
// in-memory and per-process; the open verification endpoint is the intended
// consumer, where a burst of anonymous lookups should not starve the rest of
// the router.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
	}
}

// Allow records a hit for key and reports whether it fits the window.
// A sliding window avoids the burst-at-the-boundary problem of fixed buckets.
func (l *SlidingWindowLimiter) Allow(key string) (allowed bool, remaining int, resetAt time.Time) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	recent := l.hits[key]
	i := 0
	for ; i < len(recent); i++ {
		if recent[i].After(cutoff) {
			break
		}
	}
	recent = recent[i:]

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false, 0, recent[0].Add(l.window)
	}

	recent = append(recent, now)
	l.hits[key] = recent
	return true, l.limit - len(recent), recent[0].Add(l.window)
}

type rateLimitedBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"`
}

// RateLimit rejects requests over the per-client budget with 429. The client
// key is the IP, trusting the first X-Forwarded-For hop when present.
func RateLimit(limiter *SlidingWindowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, resetAt := limiter.Allow(clientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(resetAt).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				httputil.WriteJSON(w, http.StatusTooManyRequests, rateLimitedBody{
					Error:            "rate_limit_exceeded",
					ErrorDescription: "too many requests, try again later",
					RetryAfter:       retryAfter,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
