package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/icutech/auth-gateway/internal/api/middleware"
	"github.com/icutech/auth-gateway/internal/ratelimit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		expected   string
	}{
		{"forwarded-for wins", "203.0.113.7, 10.0.0.1", "198.51.100.2", "192.0.2.1:1234", "203.0.113.7"},
		{"real-ip second", "", "198.51.100.2", "192.0.2.1:1234", "198.51.100.2"},
		{"remote addr last", "", "", "192.0.2.1:1234", "192.0.2.1"},
		{"remote addr without port", "", "", "192.0.2.1", "192.0.2.1"},
		{"nothing", "", "", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := middleware.ClientIP(r); got != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRequestLoggerMasksPasswords(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	handler := middleware.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(body string) string {
		buf.Reset()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(httptest.NewRecorder(), r)
		return buf.String()
	}

	t.Run("plain password", func(t *testing.T) {
		logged := do(`{"login":"alice","password":"secret123"}`)
		if strings.Contains(logged, "secret123") {
			t.Errorf("password leaked into log: %s", logged)
		}
		if !strings.Contains(logged, "***") {
			t.Errorf("masked placeholder missing: %s", logged)
		}
		if !strings.Contains(logged, "alice") {
			t.Errorf("non-sensitive fields must stay visible: %s", logged)
		}
	})

	t.Run("password with escaped quote", func(t *testing.T) {
		logged := do(`{"login":"alice","password":"abc\"def123"}`)
		if strings.Contains(logged, "def123") {
			t.Errorf("password tail after the escaped quote leaked: %s", logged)
		}
		if !strings.Contains(logged, "***") {
			t.Errorf("masked placeholder missing: %s", logged)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(2, 500)
	m := middleware.NewRateLimitMiddleware(limiter)

	var handled int
	handler := m.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled++
		w.WriteHeader(http.StatusOK)
	}))

	do := func(path string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, path, nil)
		r.RemoteAddr = "192.0.2.50:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	t.Run("admitted requests carry budget headers", func(t *testing.T) {
		rec := do("/api/auth/login")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("X-RateLimit-Limit = %q, want 2", rec.Header().Get("X-RateLimit-Limit"))
		}
		if rec.Header().Get("X-RateLimit-Remaining") == "" {
			t.Error("X-RateLimit-Remaining header missing")
		}
	})

	t.Run("rejection is a 429 with Retry-After", func(t *testing.T) {
		do("/api/auth/login")
		rec := do("/api/auth/login")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want 429", rec.Code)
		}
		if rec.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
		}

		var body struct {
			Error      string `json:"error"`
			Message    string `json:"message"`
			RetryAfter int    `json:"retryAfter"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Error != "Too many requests" || body.RetryAfter != 60 || body.Message == "" {
			t.Errorf("unexpected body %+v", body)
		}
	})

	t.Run("non-api paths bypass the limiter", func(t *testing.T) {
		before := handled
		rec := do("/index.html")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if handled != before+1 {
			t.Error("non-api request should reach the handler")
		}
		if rec.Header().Get("X-RateLimit-Limit") != "" {
			t.Error("non-api responses must not carry rate limit headers")
		}
	})
}
