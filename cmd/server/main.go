// Digest server - exposes the transcript analysis pipeline over HTTP and WebSocket
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GriffinCanCode/transcript-digest/internal/cache"
	"github.com/GriffinCanCode/transcript-digest/internal/config"
	"github.com/GriffinCanCode/transcript-digest/internal/engine"
	"github.com/GriffinCanCode/transcript-digest/internal/engine/gemini"
	"github.com/GriffinCanCode/transcript-digest/internal/extract"
	"github.com/GriffinCanCode/transcript-digest/internal/orchestrator"
	"github.com/GriffinCanCode/transcript-digest/internal/resource"
	"github.com/GriffinCanCode/transcript-digest/internal/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	extractor := extract.New(extract.Config{
		MinConfidence:       cfg.Extract.MinConfidence,
		SimilarityThreshold: cfg.Extract.SimilarityThreshold,
		MaxTasks:            cfg.Extract.MaxTasks,
		MaxReminders:        cfg.Extract.MaxReminders,
		MaxTitles:           cfg.Extract.MaxTitles,
	}, nil)

	eng, err := buildEngine(cfg, extractor)
	if err != nil {
		slog.Error("engine setup error", "kind", cfg.Engine.Kind, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, stopProvider := buildProvider(ctx, cfg)
	defer stopProvider()

	orch := orchestrator.New(eng, buildCache(cfg), provider, extractor, orchestrator.Config{
		MaxRetries:               cfg.Pipeline.MaxRetries,
		RetryBaseDelay:           time.Duration(cfg.Pipeline.RetryBaseSeconds) * time.Second,
		MergeSimilarityThreshold: cfg.Pipeline.MergeSimilarityThreshold,
	})

	srv := server.New(orch)

	// Write timeout covers full chunked runs, which can take a while on
	// remote engines.
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		slog.Info("digest server starting", "http", cfg.Server.Addr, "engine", eng.Identity())
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
	slog.Info("shutdown complete")
}

func buildEngine(cfg *config.Config, extractor *extract.Extractor) (engine.Engine, error) {
	switch cfg.Engine.Kind {
	case "remote":
		timeout := time.Duration(cfg.Engine.TimeoutSeconds) * time.Second
		return engine.NewRemote(cfg.Engine.BaseURL, timeout, cfg.Engine.TokenBudget), nil
	case "gemini":
		return gemini.New(cfg.Engine.Gemini.Model, cfg.Engine.Gemini.APIKeys, cfg.Engine.TokenBudget)
	default:
		return engine.NewHeuristic(extractor, cfg.Engine.TokenBudget), nil
	}
}

func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		return cache.NewRedis(client, time.Duration(cfg.Cache.Redis.TTLMinutes)*time.Minute)
	}
	return cache.NewMemory(cfg.Cache.MaxEntries, cfg.Cache.MaxCostBytes)
}

func buildProvider(ctx context.Context, cfg *config.Config) (resource.Provider, func()) {
	if !cfg.Resource.Adaptive {
		return resource.Fixed(), func() {}
	}
	interval := time.Duration(cfg.Resource.PollSeconds) * time.Second
	p := resource.NewAdaptive(resource.ACProbe(), interval)
	p.Start(ctx)
	return p, p.Stop
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
