package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/icutech/auth-gateway/internal/api/response"
	"github.com/rs/zerolog/log"
)

const upstreamProbeTimeout = 5 * time.Second

// HealthHandler reports service and upstream health.
type HealthHandler struct {
	soapURL    string
	httpClient *http.Client
}

// NewHealthHandler creates a health handler probing the SOAP service at
// soapURL.
func NewHealthHandler(soapURL string) *HealthHandler {
	return &HealthHandler{
		soapURL:    soapURL,
		httpClient: &http.Client{Timeout: upstreamProbeTimeout},
	}
}

type healthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health, including an upstream reachability probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "auth-gateway",
		"checks": map[string]any{
			"api":         healthCheck{Status: "healthy", Message: "API is running"},
			"soapService": h.probeUpstream(r.Context()),
		},
	})
}

// Ready handles GET /api/health/ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{"status": "ready", "timestamp": time.Now().UTC()})
}

// Live handles GET /api/health/live.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{"status": "alive", "timestamp": time.Now().UTC()})
}

func (h *HealthHandler) probeUpstream(ctx context.Context) healthCheck {
	ctx, cancel := context.WithTimeout(ctx, upstreamProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.soapURL, nil)
	if err != nil {
		return healthCheck{Status: "unhealthy", Message: "SOAP service URL is invalid"}
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("SOAP service health probe failed")
		if ctx.Err() != nil {
			return healthCheck{Status: "unhealthy", Message: "SOAP service timeout - service may be down"}
		}
		return healthCheck{Status: "unhealthy", Message: "SOAP service unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return healthCheck{Status: "healthy", Message: "SOAP service is responding"}
	}
	return healthCheck{Status: "degraded", Message: "SOAP service responding with status " + resp.Status}
}
