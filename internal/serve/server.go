// Package serve exposes a produced trips artifact over HTTP so the
// output can be inspected on a map. Read-only: the server never runs
// the pipeline, it just serves one finished FeatureCollection.
package serve

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/evmarti/tripscope/internal/geojson"
	"github.com/evmarti/tripscope/internal/report"
)

// Server serves one loaded artifact.
type Server struct {
	cfg    *Config
	fc     *geojson.FeatureCollection
	logger *slog.Logger
}

// NewServer loads the artifact named in cfg and prepares the server.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	fc, err := geojson.Parse(cfg.Artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", cfg.Artifact, err)
	}

	return &Server{cfg: cfg, fc: fc, logger: logger}, nil
}

// NewServerWithCollection is used by tests and callers that already
// hold a parsed collection.
func NewServerWithCollection(cfg *Config, fc *geojson.FeatureCollection, logger *slog.Logger) *Server {
	return &Server{cfg: cfg, fc: fc, logger: logger}
}

// Handler builds the routed handler with compression and rate limiting
// applied.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/", s.indexHandler)
	router.HandlerFunc(http.MethodGet, "/v1/trips.geojson", s.artifactHandler)
	router.HandlerFunc(http.MethodGet, "/v1/trips", s.tripsHandler)
	router.GET("/v1/trips/:id", s.tripHandler)
	router.HandlerFunc(http.MethodGet, "/v1/stats", s.statsHandler)

	handler := newRateLimiter(s.cfg.RatePerSecond, s.cfg.RateBurst).middleware(router)
	return applyGzip(handler)
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	s.logger.Info("serving trips artifact",
		slog.String("addr", s.cfg.Addr),
		slog.String("artifact", s.cfg.Artifact),
		slog.Int("trips", len(s.fc.Features)))

	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

func (s *Server) artifactHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	if err := s.fc.WriteTo(w); err != nil {
		report.LogError(s.logger, "failed to write artifact response", err)
	}
}

func (s *Server) tripsHandler(w http.ResponseWriter, r *http.Request) {
	props := make([]geojson.Properties, 0, len(s.fc.Features))
	for _, feat := range s.fc.Features {
		props = append(props, feat.Properties)
	}
	s.sendJSON(w, http.StatusOK, map[string]any{"trips": props})
}

func (s *Server) tripHandler(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	for _, feat := range s.fc.Features {
		if feat.Properties.TripID == id {
			s.sendJSON(w, http.StatusOK, feat)
			return
		}
	}

	s.sendJSON(w, http.StatusNotFound, map[string]any{
		"code": http.StatusNotFound,
		"text": fmt.Sprintf("no trip with id %q", id),
	})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	devices := make(map[string]bool)
	totalDistance := 0.0
	totalPoints := 0
	for _, feat := range s.fc.Features {
		devices[feat.Properties.DeviceID] = true
		totalDistance += feat.Properties.TotalDistanceKm
		totalPoints += feat.Properties.NumPoints
	}

	stats := map[string]any{
		"trips":             len(s.fc.Features),
		"devices":           len(devices),
		"points":            totalPoints,
		"total_distance_km": totalDistance,
	}
	if s.fc.Metadata != nil {
		stats["run_id"] = s.fc.Metadata.RunID
		stats["generated_at"] = s.fc.Metadata.GeneratedAt
	}

	s.sendJSON(w, http.StatusOK, stats)
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		report.LogError(s.logger, "failed to encode response", err)
	}
}
