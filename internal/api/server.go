// Package api exposes the analytics engine over HTTP: market data with
// indicators, iron condor analysis, Greeks aggregation, strike
// optimization, and position monitoring.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/quantfeld/ironcondor/internal/condor"
	"github.com/quantfeld/ironcondor/internal/config"
	"github.com/quantfeld/ironcondor/internal/marketdata"
	"github.com/quantfeld/ironcondor/internal/monitor"
)

const serviceVersion = "2.0.0"

// Server hosts the analytics HTTP API.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	logger   *logrus.Logger
	analyzer *condor.Analyzer
	monitor  *monitor.Monitor
	provider marketdata.Provider
	defaults config.StrategyConfig
	port     int
	now      func() time.Time
	started  time.Time
}

// NewServer wires the analytics engine behind the HTTP routes.
func NewServer(cfg *config.Config, provider marketdata.Provider, logger *logrus.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		analyzer: condor.NewAnalyzer(),
		monitor:  monitor.NewMonitor(),
		provider: provider,
		defaults: cfg.Strategy,
		port:     cfg.Server.Port,
		now:      time.Now,
		started:  time.Now(),
	}

	s.setupRoutes(cfg.RequestTimeout())
	return s
}

func (s *Server) setupRoutes(timeout time.Duration) {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(timeout))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/market-data", s.handleMarketData)
	s.router.Get("/positions", s.handlePositions)
	s.router.Get("/equity", s.handleEquity)

	s.router.Route("/iron-condor", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/greeks", s.handleGreeks)
		r.Post("/optimize", s.handleOptimize)
		r.Post("/monitor", s.handleMonitor)
		r.Post("/batch-update", s.handleBatchUpdate)
	})
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Infof("Starting analytics server on port %d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
