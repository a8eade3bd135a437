package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/genai-relay/internal/config"
	"github.com/kdduha/genai-relay/internal/handler"
	"github.com/kdduha/genai-relay/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/kdduha/genai-relay/docs"
)

// NewRouter binds the generation handlers, docs, metrics and the static chat page.
func NewRouter(h *handler.GenerateHandler, cfg config.ServerConfig, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		hlog.NewHandler(logger),
		accessLog,
		middleware.Recoverer,
	}
	if cfg.ThrottleLimit > 0 {
		mws = append(mws, middleware.Throttle(cfg.ThrottleLimit))
	}
	if cfg.Timeout > 0 {
		mws = append(mws, middleware.Timeout(cfg.Timeout))
	}
	mws = append(mws, metrics.Middleware)
	r.Use(mws...)

	r.Post("/generate-text", h.GenerateText)
	r.Post("/generate-from-image", h.GenerateFromImage)
	r.Post("/generate-from-audio", h.GenerateFromAudio)
	r.Post("/generate-from-document", h.GenerateFromDocument)
	r.Get("/health", h.Health)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	if cfg.StaticDir != "" {
		r.Get("/*", http.FileServer(http.Dir(cfg.StaticDir)).ServeHTTP)
	}
	return r
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
})
