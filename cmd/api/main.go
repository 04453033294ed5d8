package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := bootstrap.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	for _, warning := range cfg.Warnings() {
		appLogger.Warn("Configuration warning", map[string]any{"warning": warning})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize application", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if cfg.Worker.Embedded {
		container.StartWorkers(ctx)
	}

	exitCode := 0
	if err := container.Serve(ctx); err != nil {
		appLogger.Error("Server stopped with error", map[string]any{"error": err.Error()})
		exitCode = 1
	}

	// Workers stop only once the HTTP server has drained
	if err := container.Close(); err != nil {
		appLogger.Error("Failed to release resources", map[string]any{"error": err.Error()})
		exitCode = 1
	}

	if exitCode != 0 {
		_ = appLogger.Flush()
		os.Exit(exitCode)
	}
}
