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

	"github.com/minirel/minirel/internal/config"
	"github.com/minirel/minirel/internal/minirel"
	"github.com/minirel/minirel/internal/pkg/logging"
	"github.com/minirel/minirel/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // flushes buffer, if any

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aDatabase := minirel.NewDatabase(logger)
	if err := web.DeclareTables(ctx, aDatabase); err != nil {
		logger.Sugar().With("error", err).Fatal("declaring tables")
	}
	if cfg.Seed {
		if err := web.Seed(ctx, aDatabase); err != nil {
			logger.Sugar().With("error", err).Fatal("seeding demo data")
		}
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: web.NewServer(aDatabase, logger).Handler(),
	}

	go func() {
		logger.Sugar().With("addr", cfg.ListenAddr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().With("error", err).Fatal("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().With("error", err).Error("shutting down")
	}
	logger.Info("stopped")
}
