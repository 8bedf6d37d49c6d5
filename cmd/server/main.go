package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tariqak/tariqak/internal/config"
	"github.com/tariqak/tariqak/internal/domain"
	"github.com/tariqak/tariqak/internal/gemini"
	"github.com/tariqak/tariqak/internal/httpserver"
	"github.com/tariqak/tariqak/internal/ingest"
	"github.com/tariqak/tariqak/internal/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := sqlite.NewRepository(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	logger.Info("database ready", "path", cfg.DatabasePath)

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if count, err := repo.CountPosts(ctx); err != nil {
		return fmt.Errorf("count posts: %w", err)
	} else if count == 0 {
		inserted, err := repo.SeedSampleData(ctx, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		logger.Info("database empty, seeded sample messages", "inserted", inserted)
	}

	var gen domain.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("create gemini client: %w", err)
		}
		gen = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, serving keyword analysis only")
	}

	statuses := domain.NewStatusService(repo, gen, logger)
	cache := domain.NewStatusCache(statuses, domain.DefaultStatusTTL)
	queries := domain.NewQueryService(repo, gen, logger)

	// Start the gateway subscriber in the background
	if cfg.GatewayURL != "" {
		subscriber := ingest.NewSubscriber(cfg.GatewayURL, cfg.Channels, repo, logger)
		go func() {
			if err := subscriber.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("gateway subscriber exited with error", "error", err)
			}
		}()
	} else {
		logger.Warn("GATEWAY_URL not set, ingestion disabled")
	}

	// Start the HTTP server
	server := httpserver.NewServer(cfg, cache, queries, repo, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("server started", "port", cfg.Port)

	// Wait for shutdown signal
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())
	cancel()

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}
