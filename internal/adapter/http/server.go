package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/overlay"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultWriteTimeout covers a render pass at the default feed timeout.
const DefaultWriteTimeout = 90 * time.Second

// Renderer runs render passes and lookups against the live feeds.
type Renderer interface {
	sharedobs.ReadinessChecker
	Render(ctx context.Context) (*overlay.Map, error)
	Lookup(ctx context.Context, id string) (domain.EarthquakeFeature, error)
}

// Server exposes the map page, its data APIs, and health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	renderer   Renderer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with map, API, /healthz, /readyz, and /metrics routes.
// writeTimeout must outlast a full render pass; zero means DefaultWriteTimeout.
func NewServer(addr string, renderer Renderer, writeTimeout time.Duration, logger *slog.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
		},
		renderer: renderer,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /api/earthquakes/{id}", s.handleLookup)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(renderer))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
