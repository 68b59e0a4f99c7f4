package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kiervincent5/travel-planner/internal/adapters/infrastructure"
	"github.com/kiervincent5/travel-planner/internal/app"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/pkg/logger"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.NewWithLevel(logger.ParseLevel(cfg.App.LogLevel)).Logger)
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracer, err := infrastructure.InitTracer(cfg.Tracing)
	if err != nil {
		slog.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	application, err := app.NewApplicationFromConfig(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	slog.Info("Configuration loaded successfully",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", cfg.Store.Type.String(),
		"database", cfg.Database.Driver.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupGracefulShutdown(cancel, application, shutdownTracer)

	slog.Info("Starting Travel Planner API...")
	if err := application.Start(ctx); err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(cancel context.CancelFunc, app *app.Application, shutdownTracer infrastructure.ShutdownFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		slog.Info("Received shutdown signal...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during graceful shutdown", "error", err)
		}
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Warn("Error flushing traces", "error", err)
		}

		os.Exit(0)
	}()
}
