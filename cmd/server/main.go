package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quantfeld/ironcondor/internal/api"
	"github.com/quantfeld/ironcondor/internal/config"
	"github.com/quantfeld/ironcondor/internal/marketdata"
)

const shutdownGrace = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file (optional)")
	flag.Parse()

	logger := logrus.New()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load config")
		}
		cfg = loaded
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Fatal("Invalid log level")
	}
	logger.SetLevel(level)

	provider := buildProvider(cfg, logger)
	server := api.NewServer(cfg, provider, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case sig := <-sigChan:
		logger.Infof("Received %s, shutting down", sig)
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown did not complete cleanly")
	}
	logger.Info("Server stopped")
}

// buildProvider assembles the market data source, optionally guarded by a
// circuit breaker.
func buildProvider(cfg *config.Config, logger *logrus.Logger) marketdata.Provider {
	var provider marketdata.Provider = marketdata.NewSyntheticProvider()

	if cb := cfg.MarketData.CircuitBreaker; cb.Enabled {
		settings := marketdata.CircuitBreakerSettings{
			MaxRequests:  3,
			Interval:     60 * time.Second,
			Timeout:      30 * time.Second,
			MinRequests:  cb.MinRequests,
			FailureRatio: cb.FailureRatio,
		}
		if cb.OpenTimeout != "" {
			if d, err := time.ParseDuration(cb.OpenTimeout); err == nil {
				settings.Timeout = d
			}
		}
		if settings.MinRequests == 0 {
			settings.MinRequests = 5
		}
		if settings.FailureRatio == 0 {
			settings.FailureRatio = 0.6
		}
		provider = marketdata.NewCircuitBreakerProviderWithSettings(provider, logger, settings)
	}

	return provider
}
