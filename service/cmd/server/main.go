// Command server hosts pebbles games over websocket.
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

	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/cache"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/config"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/database"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/logging"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/random"
	"github.com/JohnLee1360/JLpebbles-gear-academy/service/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pebbles server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defaults, err := cfg.GameDefaults()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Logger:    logger,
		Defaults:  defaults,
		NewRandom: random.SourceFactory(cfg.Seed),
	}
	if cfg.Seed != 0 {
		logger.WithField("seed", cfg.Seed).Warn("Deterministic seed configured.")
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, action log disabled.")
		} else {
			defer rdb.Close()
			opts.Cache = cache.New(rdb, cfg.ActionLogTTL)
			logger.WithField("addr", cfg.RedisAddr).Info("Redis action log enabled.")
		}
	}

	store, err := database.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	switch {
	case errors.Is(err, database.ErrNoStore):
		logger.Info("No results store configured.")
	case err != nil:
		return fmt.Errorf("open results store: %w", err)
	default:
		defer store.Close()
		opts.Results = store
	}

	srv := server.New(opts)
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("Listening.")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down.")
	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
