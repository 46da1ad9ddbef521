package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunLookup finds a stored forecast run by ID, returning an error matching
// domain.ErrRunNotFound when there is none.
type RunLookup interface {
	Run(ctx context.Context, id string) (domain.ForecastRun, error)
}

// Server exposes health, readiness, metrics, and forecast HTTP endpoints.
type Server struct {
	httpServer *http.Server
	runs       *RunCache
	history    RunLookup
	logger     *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithHistory serves runs evicted from the cache out of h.
func WithHistory(h RunLookup) ServerOption {
	return func(s *Server) { s.history = h }
}

// NewServer creates an HTTP server serving forecasts from runs. Readiness
// follows the cache: /readyz returns 503 until the first run is loaded.
func NewServer(addr string, runs *RunCache, logger *slog.Logger, opts ...ServerOption) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runs:   runs,
		logger: logger,
	}
	for _, o := range opts {
		o(s)
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(runs))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/forecast", s.handleLatest)
	mux.HandleFunc("GET /v1/forecast/{id}", s.handleRun)
	mux.HandleFunc("GET /v1/advisories", s.handleAdvisories)

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

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.runs.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorBody{Error: "no forecast available"})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, run)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if run, ok := s.runs.Get(id); ok {
		sharedobs.WriteJSON(w, http.StatusOK, run)
		return
	}
	if s.history == nil {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorBody{Error: "forecast run not found", ID: id})
		return
	}

	run, err := s.history.Run(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		sharedobs.WriteJSON(w, http.StatusNotFound, errorBody{Error: "forecast run not found", ID: id})
	case err != nil:
		s.logger.Error("forecast history lookup failed", "run_id", id, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "forecast history unavailable", ID: id})
	default:
		sharedobs.WriteJSON(w, http.StatusOK, run)
	}
}

type tierBody struct {
	Tier       domain.Tier `json:"tier"`
	Advisories []string    `json:"advisories"`
}

func (s *Server) handleAdvisories(w http.ResponseWriter, _ *http.Request) {
	tiers := domain.Tiers()
	body := make([]tierBody, len(tiers))
	for i, t := range tiers {
		body[i] = tierBody{Tier: t, Advisories: domain.Advisories(t)}
	}
	sharedobs.WriteJSON(w, http.StatusOK, body)
}

type errorBody struct {
	Error string `json:"error"`
	ID    string `json:"id,omitempty"`
}
