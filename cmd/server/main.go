package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/dependencies/clock"
	"github.com/mcoot/coincollector-go/internal/dependencies/random"
	"github.com/mcoot/coincollector-go/internal/httpapi"
	"github.com/mcoot/coincollector-go/internal/session"
	"github.com/mcoot/coincollector-go/internal/storage/memory"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := memory.New()
	manager := session.NewManager(cfg, logger, clock.New(), random.New(), store)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:  logger,
		Manager: manager,
		Store:   store,
	})

	serverConfig := httpapi.DefaultServerConfig()
	serverConfig.Addr = cfg.ListenAddr
	server := httpapi.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.Int("tick_rate", cfg.TickRate),
		slog.Int("broadcast_rate", cfg.BroadcastRate),
		slog.Duration("network_delay", cfg.NetworkDelay),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		manager.Stop()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
