package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/maze-tournament/brackets"
	"github.com/Dosada05/maze-tournament/config"
	"github.com/Dosada05/maze-tournament/handlers"
	"github.com/Dosada05/maze-tournament/maze"
	"github.com/Dosada05/maze-tournament/repositories"
	api "github.com/Dosada05/maze-tournament/routes"
	"github.com/Dosada05/maze-tournament/services"
	"github.com/Dosada05/maze-tournament/storage"
)

const shutdownTimeout = 15 * time.Second

// @title Maze Tournament API
// @version 1.0
// @description Maze generation, player runs and seeded single-elimination brackets.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("snapshot_path", cfg.SnapshotPath),
		slog.Bool("r2_enabled", cfg.R2Enabled()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repositories
	historyRepo := repositories.NewMemoryRunHistoryRepository(cfg.HistoryCapacity)
	snapshotRepo := repositories.NewFileSnapshotRepository(cfg.SnapshotPath)
	logger.Info("repositories initialized")

	// The bracket service treats a nil interface as "no mirror", so a typed
	// nil pointer must never reach it.
	var mirror services.SnapshotMirror
	if cfg.R2Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		snapshotMirror := storage.NewSnapshotMirror(uploader, storage.DefaultSnapshotKey)
		mirror = snapshotMirror
		logger.Info("Cloudflare R2 snapshot mirror initialized", slog.String("url", snapshotMirror.URL()))
	}

	// WebSocket hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket hub started")

	// Services
	mazeService := services.NewMazeService(historyRepo, snapshotRepo, services.MazeServiceConfig{
		DefaultSize:     cfg.DefaultMazeSize,
		DefaultStrategy: cfg.PathStrategy,
		Generation:      maze.DefaultOptions(),
	}, logger)
	bracketService := services.NewBracketService(snapshotRepo, mirror, wsHub, logger)
	logger.Info("services initialized")

	go runHistoryPruner(ctx, mazeService, cfg.HistoryPruneInterval, cfg.HistoryRetention, logger)

	// HTTP handlers and routes
	mazeHandler := handlers.NewMazeHandler(mazeService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, bracketService, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, logger, cfg.CORSAllowedOrigins, mazeHandler, bracketHandler, webSocketHandler)
	logger.Info("routes configured")

	// WriteTimeout stays zero: websocket connections are long-lived and the
	// API routes carry their own request timeout.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		cancel()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		// Stops the pruner and closes websocket clients before draining HTTP.
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// runHistoryPruner drops runs older than retention every interval until ctx
// is cancelled.
func runHistoryPruner(ctx context.Context, ms services.MazeService, interval, retention time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("history pruner started",
		slog.Duration("interval", interval),
		slog.Duration("retention", retention))

	for {
		select {
		case <-ctx.Done():
			logger.Info("history pruner stopped")
			return
		case <-ticker.C:
			removed, err := ms.PruneHistory(ctx, retention)
			if err != nil {
				logger.Error("history prune failed", slog.Any("error", err))
				continue
			}
			if removed > 0 {
				logger.Info("history pruned", slog.Int("removed", removed))
			}
		}
	}
}
