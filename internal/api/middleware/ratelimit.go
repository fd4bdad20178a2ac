package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/icutech/auth-gateway/internal/api/response"
	"github.com/icutech/auth-gateway/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// rateLimitedPrefix designates the path subtree subject to rate limiting;
// everything else (static frontend, swagger) bypasses the limiter.
const rateLimitedPrefix = "/api"

// rateLimitError is the 429 body shape consumed by the frontend backoff.
type rateLimitError struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
}

// RateLimitMiddleware applies the sliding-window limiter per client IP.
type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
}

// NewRateLimitMiddleware creates a rate limit middleware around limiter.
func NewRateLimitMiddleware(limiter *ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit admits or rejects API requests. Rejections carry a Retry-After
// header; admitted responses carry the X-RateLimit-* budget headers.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, rateLimitedPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r)
		decision := m.limiter.Allow(ip)

		if !decision.Allowed {
			log.Warn().
				Str("ip", ip).
				Str("path", r.URL.Path).
				Int("retry_after", decision.RetryAfter).
				Msg("Rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfter))
			response.JSON(w, http.StatusTooManyRequests, rateLimitError{
				Error:      "Too many requests",
				Message:    decision.Message,
				RetryAfter: decision.RetryAfter,
			})
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		next.ServeHTTP(w, r)
	})
}
