// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/logger"
	"github.com/yourusername/clever-forecast/internal/metrics"
	"github.com/yourusername/clever-forecast/internal/scheduler"
	"github.com/yourusername/clever-forecast/internal/settings"
)

// MaxBatchSize caps the fixtures accepted by one batch request
const MaxBatchSize = 500

// Pinger defines the interface for checking backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReportSource yields the latest scheduled analysis
type ReportSource interface {
	Latest() (*scheduler.Report, bool)
}

// Config holds the configuration for the API server.
type Config struct {
	ServiceName    string
	Version        string
	Commit         string
	Host           string
	Port           int
	AllowedOrigins []string
	MetricsPath    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Logger         *logrus.Logger
}

// Server serves health, metrics and analysis endpoints.
type Server struct {
	cfg      Config
	pipeline *analysis.Pipeline
	store    settings.Store
	reports  ReportSource
	validate *validator.Validate
	logger   *logrus.Entry
	router   chi.Router
	server   *http.Server

	mu    sync.RWMutex
	ready bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// Option configures optional collaborators
type Option func(*Server)

// WithSettings supplies the store read for the bankroll
func WithSettings(store settings.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithReports exposes scheduled analysis results
func WithReports(r ReportSource) Option {
	return func(s *Server) {
		s.reports = r
	}
}

// NewServer creates a new API server.
func NewServer(cfg Config, pipeline *analysis.Pipeline, opts ...Option) *Server {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "clever-forecast"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		validate: validator.New(),
		logger:   logger.OrDiscard(cfg.Logger).WithField("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.WriteTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/live", s.handleLive)
	r.Get("/ready", s.handleReady)
	r.Handle(s.cfg.MetricsPath, metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/analyze/batch", s.handleAnalyzeBatch)
		r.Get("/teams", s.handleTeams)
		r.Get("/reports/latest", s.handleLatestReport)

		r.Get("/settings", s.handleListSettings)
		r.Get("/settings/{key}", s.handleGetSetting)
		r.Put("/settings/{key}", s.handlePutSetting)
		r.Delete("/settings/{key}", s.handleDeleteSetting)
	})

	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves in the background until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":    s.server.Addr,
			"service": s.cfg.ServiceName,
		}).Info("API server starting")

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server error")
			errCh <- err
		}
		close(errCh)
	}()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.logger.WithError(err).Warn("API server shutdown error")
		}
	}()

	// surface immediate bind failures
	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		s.SetReady(true)
		return nil
	}
}

// Shutdown gracefully shuts down the server; later calls return the first result.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.shutdownOnce.Do(func() {
		s.SetReady(false)
		s.logger.Info("API server shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.shutdownErr = s.server.Shutdown(ctx)
	})
	return s.shutdownErr
}
