// Package server exposes the tiling pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                       liveness and build info
//	GET  /v1/presets                    available seed presets
//	POST /v1/tilings                    run the pipeline from a JSON body
//	GET  /v1/tilings/{preset}.{format}  render a preset, with query overrides
//	GET  /v1/stats                      event counters, when Counters is set
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with a code and a message; invalid input maps to 400, generation failures
// to 422 and everything else to 500.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rectile/pkg/config"
	"github.com/matzehuels/rectile/pkg/observability"
	"github.com/matzehuels/rectile/pkg/pipeline"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// Server handles HTTP requests for tilings.
type Server struct {
	cfg    config.Config
	runner *pipeline.Runner
	logger *log.Logger

	// Counters, if set, is reported at /v1/stats. The caller registers it
	// with the observability package.
	Counters *observability.Counters
}

// New creates a server. cfg supplies request defaults (tiling section,
// render scale) and listener settings.
func New(cfg config.Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{cfg: cfg, runner: runner, logger: logger}
}

// Handler returns the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/presets", s.listPresets)
		r.Post("/tilings", s.createTiling)
		r.Get("/tilings/{file}", s.renderPreset)
		r.Get("/stats", s.stats)
	})
	r.NotFound(notFound)
	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
