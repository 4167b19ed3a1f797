// Command surf-api serves surf reports for Taiwan spots over HTTP.
//
// Configuration comes from the environment (see internal/config). The server
// shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/api"
	"github.com/ngmaloney/surf-terminal/internal/app"
	"github.com/ngmaloney/surf-terminal/internal/config"
	"github.com/ngmaloney/surf-terminal/internal/database"
	"github.com/ngmaloney/surf-terminal/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("surf-api starting",
		zap.String("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.Bool("redis", cfg.RedisURL != ""),
	)

	opts := database.ProvisionOptions{ZonesShapefile: cfg.ZonesShapefile}
	if err := database.Provision(cfg.DBPath, opts, nil, logger); err != nil {
		return fmt.Errorf("provisioning database: %w", err)
	}

	stack, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	// Wave zone sync needs the network; failure only disables the fallback.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout)
		defer cancel()
		if _, err := stack.SyncWaveZones(ctx); err != nil {
			logger.Warn("wave zone sync failed", zap.Error(err))
		}
	}()

	srv := api.NewServer(stack.Spots, stack.Reports, logger, api.WithRequestTimeout(cfg.HTTPTimeout))

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}
