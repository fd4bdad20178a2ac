package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/icutech/auth-gateway/internal/api/handler"
	custommw "github.com/icutech/auth-gateway/internal/api/middleware"
	"github.com/icutech/auth-gateway/internal/config"
	"github.com/icutech/auth-gateway/internal/ratelimit"
	"github.com/icutech/auth-gateway/internal/soap"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *config.Config, client soap.AuthClient) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))

	// Rate limiting applies to /api only; the middleware itself skips other
	// paths.
	limiter := ratelimit.New(cfg.RateLimit.PerMinute, cfg.RateLimit.PerHour)
	r.Use(custommw.NewRateLimitMiddleware(limiter).Limit)

	authHandler := handler.NewAuthHandler(client)
	profileHandler := handler.NewProfileHandler()
	healthHandler := handler.NewHealthHandler(cfg.Soap.URL)

	r.Route("/api", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", healthHandler.Health)
			r.Get("/ready", healthHandler.Ready)
			r.Get("/live", healthHandler.Live)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Post("/check-password-strength", profileHandler.CheckPasswordStrength)

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Delete("/", profileHandler.Delete)
				r.Post("/change-password", profileHandler.ChangePassword)
			})
		})
	})

	// Demo frontend, when present: static assets with an index.html fallback.
	if cfg.Server.StaticDir != "" {
		mountStatic(r, cfg.Server.StaticDir)
	}

	return r
}

func mountStatic(r chi.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+req.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, req)
			return
		}
		http.ServeFile(w, req, index)
	})
}
