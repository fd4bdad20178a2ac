package middleware

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxLoggedRequestBody caps how much of a request body is read for logging.
const maxLoggedRequestBody = 10000

var staticExtensions = []string{
	".css", ".js", ".jpg", ".jpeg", ".png", ".gif", ".svg",
	".ico", ".woff", ".woff2", ".ttf", ".eot",
}

// Credential-bearing JSON fields are masked before the body reaches the log.
// The value matcher steps over escaped quotes so the whole value is consumed.
var sensitiveFieldRe = regexp.MustCompile(`(?i)"(password|token|apiKey)"\s*:\s*"(?:[^"\\]|\\.)*"`)

// RequestLogger logs every API request and its response status with the
// request id, client IP and duration. Static assets and HTML page loads are
// skipped; passwords in logged bodies are masked.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isStaticFile(r.URL.Path) || isHTMLRequest(r) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := chimiddleware.GetReqID(r.Context())
		start := time.Now()

		event := log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("ip", ClientIP(r)).
			Str("user_agent", r.UserAgent())
		if body := peekBody(r); body != "" {
			event = event.Str("body", maskSensitive(body))
		}
		event.Msg("Incoming request")

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		logLevelFor(status).
			Str("request_id", requestID).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	})
}

// peekBody reads a small JSON request body for logging and puts it back so
// the handler can still decode it.
func peekBody(r *http.Request) string {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return ""
	}
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return ""
	}
	if r.Body == nil || r.ContentLength <= 0 || r.ContentLength >= maxLoggedRequestBody {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedRequestBody))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	return string(data)
}

func maskSensitive(body string) string {
	return sensitiveFieldRe.ReplaceAllStringFunc(body, func(match string) string {
		name := match[:strings.Index(match, ":")]
		return name + `:"***"`
	})
}

func logLevelFor(status int) *zerolog.Event {
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Info()
	}
}

func isStaticFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range staticExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isHTMLRequest(r *http.Request) bool {
	if r.URL.Path == "/" || strings.HasSuffix(strings.ToLower(r.URL.Path), ".html") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
