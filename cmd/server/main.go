package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdduha/genai-relay/internal/cache"
	"github.com/kdduha/genai-relay/internal/config"
	"github.com/kdduha/genai-relay/internal/handler"
	"github.com/kdduha/genai-relay/internal/llm"
	"github.com/kdduha/genai-relay/internal/logger"
	"github.com/kdduha/genai-relay/internal/server"
	"github.com/kdduha/genai-relay/internal/service"
	"github.com/rs/zerolog"
)

// @title GenAI Relay API
// @version 1.0
// @description Relay prompts and attachments to a generative model.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("config error")
	}

	log := logger.New(cfg.Log)
	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	generator, err := llm.New(ctx, cfg.Model)
	if err != nil {
		return fmt.Errorf("model client %q: %w", cfg.Model.Provider, err)
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}

	generateService := service.NewGenerateService(log, generator, cfg.Model)

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(cfg.RedisConfig)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisConfig.Addr).Msg("redis is not reachable, cache errors will be ignored")
		}
		generateService.SetCacheClient(redisCache)
		log.Info().Msg("set redis as cache")
	}

	h := handler.NewGenerateHandler(generateService, cfg.Server.MaxUploadBytes())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.NewRouter(h, cfg.Server, log),
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", "http://localhost:"+cfg.Server.Port).
			Str("provider", cfg.Model.Provider).
			Str("model", cfg.Model.Name).
			Msg("server started")
		log.Info().Msg("endpoints available: POST /generate-text, POST /generate-from-image, POST /generate-from-audio, POST /generate-from-document")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
