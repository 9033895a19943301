// Package main is the entry point for the Alexander Presign server, an HTTP
// service that hands out presigned S3 URLs for credentials held in its
// keystore.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/internal/config"
	"github.com/prn-tf/alexander-presign/internal/handler"
	"github.com/prn-tf/alexander-presign/internal/keystore"
	"github.com/prn-tf/alexander-presign/internal/metrics"
	"github.com/prn-tf/alexander-presign/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting Alexander Presign server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys, err := keystore.Open(ctx, cfg.Keystore, logger)
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	defer keys.Close()

	m := metrics.New()
	presign := service.NewPresignService(keys, cfg.Signing, m, logger)

	routerCfg := handler.RouterConfig{
		Presign: handler.NewPresignHandler(presign, logger),
		Keys:    handler.NewKeysHandler(keys, logger),
		Health:  keys,
		Logger:  logger,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = m
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("endpoint", cfg.Signing.Endpoint).
			Str("region", cfg.Signing.Region).
			Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// newLogger builds the process logger per the logging configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
