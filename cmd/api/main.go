package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/app"
	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/observability"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	stopPprof, err := observability.InitPprof(cfg, logger)
	if err != nil {
		logger.Error("init pprof", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	application.Start()
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := stopPprof(shutdownCtx); err != nil {
		logger.Error("stop pprof", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", "error", err)
	}

	logger.Info("http server stopped")
}
