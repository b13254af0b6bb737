package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/tclemos/webbench/benchmark"
)

// Defaults used when the CLI flags are left alone
const (
	DefaultAddr         = "127.0.0.1:8080" // listen address
	DefaultTemplatesDir = "templates"      // template tree
	DefaultAssetsDir    = "static/assets"  // served under /assets/

	shutdownTimeout = 5 * time.Second
)

// Config defines the server parameters passed from CLI
type Config struct {
	Addr          string // listen address
	TemplatesDir  string // template tree, loaded once at startup
	AssetsDir     string // served under /assets/
	MaxOps        uint64 // per-request ops cap, 0 means unlimited
	EnableMetrics bool   // expose /metrics
}

// Server hosts the landing page, the bench API and the static assets
type Server struct {
	cfg       Config
	templates *template.Template
	assets    fs.FS
	metrics   *benchmark.Metrics
	registry  *prometheus.Registry
	router    chi.Router
}

// New builds a server from already opened template and asset trees. The
// template tree is parsed here; any failure is returned.
func New(cfg Config, templates, assets fs.FS) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	tmpl, err := LoadTemplates(templates)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		cfg:       cfg,
		templates: tmpl,
		assets:    assets,
		metrics:   benchmark.NewMetrics(registry),
		registry:  registry,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/api/bench", s.handleBench)
	r.Get("/assets/*", assetHandler("/assets", s.assets).ServeHTTP)
	if s.cfg.EnableMetrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run binds the listen address and serves until ctx is cancelled, then
// drains in-flight requests. Bind failures are returned immediately.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. It takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("templates_dir", s.cfg.TemplatesDir).
		Str("assets_dir", s.cfg.AssetsDir).
		Uint64("max_ops", s.cfg.MaxOps).
		Bool("metrics", s.cfg.EnableMetrics).
		Msg("Server listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
