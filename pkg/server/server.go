// Package server exposes the animation pipeline over HTTP.
//
// Routes:
//
//	POST /v1/animate    animate the SVG request body, respond with image/svg+xml
//	GET  /v1/keyframes  synthesize a single @keyframes rule
//	GET  /v1/preview    WebSocket: step a virtual timeline over an animated document
//	GET  /healthz       liveness probe
//
// Errors are JSON objects of the form {"code": "...", "message": "..."}.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/svgreveal/pkg/pipeline"
)

// DefaultTimeout bounds the time spent on one request, excluding previews.
const DefaultTimeout = 30 * time.Second

// shutdownGrace is how long in-flight requests get to finish on shutdown.
const shutdownGrace = 5 * time.Second

// Config configures a Server.
type Config struct {
	Addr    string        // listen address, e.g. ":8080"
	Timeout time.Duration // per-request timeout; zero means DefaultTimeout

	// AllowedOrigins lists extra origins (full "scheme://host" or bare host)
	// that may open a preview WebSocket. Same-origin requests are always
	// allowed; "*" allows every origin.
	AllowedOrigins []string
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	cfg      Config
	router   chi.Router
	upgrader *websocket.Upgrader
}

// New creates a server backed by runner. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	s := &Server{runner: runner, logger: logger, cfg: cfg}
	s.upgrader = s.newUpgrader()
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	// Previews are long-lived connections and run without the request timeout.
	r.Get("/v1/preview", s.handlePreview)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))
		r.Post("/v1/animate", s.handleAnimate)
		r.Get("/v1/keyframes", s.handleKeyframes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
