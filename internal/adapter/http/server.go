// Package http exposes the service's HTTP surface: operational endpoints
// and the synchronous CAP-to-GeoJSON transform API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	cap2geojson "github.com/World-Meteorological-Organization/cap2geojson"
	"github.com/World-Meteorological-Organization/cap2geojson/internal/config"
	"github.com/World-Meteorological-Organization/cap2geojson/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and transform HTTP endpoints.
type Server struct {
	httpServer    *http.Server
	logger        *slog.Logger
	metrics       *observability.Metrics
	maxInputBytes int64
	clock         clockwork.Clock
	startedAt     time.Time
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /v1/transform routes.
func NewServer(cfg *config.Config, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	clock := clockwork.NewRealClock()
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:        logger,
		metrics:       metrics,
		maxInputBytes: cfg.MaxInputBytes,
		clock:         clock,
		startedAt:     clock.Now(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/transform", s.handleTransform)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": s.clock.Since(s.startedAt).Round(time.Second).String(),
	})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleTransform converts the request body, one CAP XML document, into a
// GeoJSON FeatureCollection. Input errors map to 400, oversized bodies to
// 413; the conversion core never sees presentation concerns.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxInputBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": fmt.Sprintf("request body exceeds %d bytes", s.maxInputBytes),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read request body: " + err.Error()})
		return
	}

	fc, err := cap2geojson.ToGeoJSON(body)
	if err != nil {
		stage := observability.ConversionStage(err)
		s.metrics.ConversionErrors.WithLabelValues(stage).Inc()
		s.logger.Warn("transform request failed", "error", err, "stage", stage)

		status := http.StatusInternalServerError
		if stage != "other" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	s.metrics.ConversionsTotal.Inc()
	s.metrics.ConversionDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, fc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
