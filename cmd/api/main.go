package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/receitas/backend/config"
	"github.com/pageza/receitas/backend/internal/bootstrap"
	"github.com/pageza/receitas/backend/internal/logging"
	"github.com/pageza/receitas/backend/internal/router"
	"github.com/pageza/receitas/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("failed to close connections", "error", err)
		}
	}()

	go app.WarmFeed(ctx)

	// Create and start server
	srv := server.New(cfg.Addr(), router.SetupRouter(log, cfg.CORSOrigins, app.Services()), log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server error", "error", err)
			return
		}
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	// Gracefully shutdown the server
	log.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("server shutdown error", "error", err)
		return
	}
	log.Info("server stopped")
}
