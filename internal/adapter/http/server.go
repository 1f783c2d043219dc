package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

// UVService is the part of the pipeline the HTTP API serves.
type UVService interface {
	sharedobs.ReadinessChecker
	Load(ctx context.Context) (domain.CombinedResult, error)
	LatestByStation(ctx context.Context) ([]domain.MapPoint, error)
	ErrorResult(err error, details string) domain.CombinedResult
}

// Server exposes the UV API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        UVService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api/v1/uv, /api/v1/uv/map, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, svc UVService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("GET /api/v1/uv", s.handleUV)
	mux.HandleFunc("GET /api/v1/uv/map", s.handleMap)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Outermost runs first.
	var handler http.Handler = mux
	handler = s.recovery(handler)
	handler = s.accessLog(handler)
	handler = requestID(handler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
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
