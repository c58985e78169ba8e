package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/services"
	"github.com/luqmanhadi/oshikatsu/internal/source"
)

// Server holds the HTTP server dependencies
type Server struct {
	cfg       *config.Config
	assembler services.PageAssembler
	source    source.Source
	router    chi.Router
}

// New creates the HTTP handler serving the oshi page, health checks and the public directory
func New(cfg *config.Config, assembler services.PageAssembler, src source.Source) *Server {
	s := &Server{
		cfg:       cfg,
		assembler: assembler,
		source:    src,
		router:    chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.Sentry.DSN != "" {
		// Repanic hands the panic on to Recoverer after Sentry has seen it
		s.router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	if s.cfg.Compression.Enabled {
		s.router.Use(newCompressor(s.cfg.Compression.Level).Handler)
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.GetHead)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlePage)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/readyz", s.handleReady)

	FileServer(s.router, "/", publicFS{http.Dir(s.cfg.PublicDir)})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.assembler.Assemble(r.Context(), &buf); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("source", s.source.Name()).Msg("Failed to render oshi page")
		reportError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleReady reports whether the data source can currently be read and decoded
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	list, err := s.source.Load(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Data source not ready")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("data source unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "ok: %d oshi", len(list))
}

func reportError(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}
}

// NewHTTPServer wraps handler in an http.Server listening on the configured address
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
