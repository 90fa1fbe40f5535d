package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"remix-backend/internal/config"
	"remix-backend/internal/database"
	"remix-backend/internal/handlers"
	"remix-backend/internal/logger"
	"remix-backend/internal/middleware"
	"remix-backend/internal/repository"
	"remix-backend/internal/router"
	"remix-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("env", cfg.Env).Str("llm_provider", cfg.LLMProvider).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: LLM Client ────
	llm, err := services.NewLLMClient(ctx, services.LLMOptions{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.LLMAPIKey(),
		Model:       llmModel(cfg),
		VisionModel: visionModel(cfg),
		BaseURL:     cfg.OpenAIBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("LLM client initialization failed")
	}

	var (
		generator services.Generator
		vision    services.VisionModel
	)
	if llm != nil {
		defer llm.Close()
		generator, vision = llm, llm
		log.Info().Str("provider", llm.Provider()).Msg("LLM client initialized")
	} else {
		log.Warn().Str("key", cfg.LLMKeyName()).Msg("LLM key not set; generation routes will fail")
	}

	// ──── Step 3: YouTube Data API ────
	youtubeData, err := services.NewYouTubeDataService(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("YouTube Data API client initialization failed")
	}
	if youtubeData == nil {
		log.Warn().Msg("YOUTUBE_API_KEY not set; comment routes will fail")
	}

	// ──── Step 4: Redis (optional result handoff) ────
	var resultHandler *handlers.ResultHandler
	if cfg.RedisURL != "" {
		var rdb *redis.Client
		rdb, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer rdb.Close()
		resultHandler = handlers.NewResultHandler(repository.NewResultRepo(rdb, cfg.ResultTTL), cfg.MaxUploadBytes)
		log.Info().Dur("ttl", cfg.ResultTTL).Msg("Redis connected, result handoff enabled")
	}

	// ──── Step 5: Services and Handlers ────
	contentService := services.NewContentService(generator, cfg.LLMKeyName(), log)
	screenshotService := services.NewScreenshotService(vision, cfg.LLMKeyName(), log)
	resolver := services.NewVideoResolver(youtubeData)
	transcripts := services.NewYouTubeService(log)
	articles := services.NewArticleService(log)
	extractor := services.NewFileExtractService()

	h := router.Handlers{
		Content:    handlers.NewContentHandler(contentService, cfg.MaxUploadBytes),
		Screenshot: handlers.NewScreenshotHandler(screenshotService, cfg.MaxUploadBytes),
		YouTube:    handlers.NewYouTubeHandler(resolver, youtubeData, transcripts),
		Article:    handlers.NewArticleHandler(articles),
		Extract:    handlers.NewExtractHandler(extractor, cfg.MaxUploadBytes),
		Results:    resultHandler,
	}

	limiter := middleware.NewLLMRateLimiter(ctx, cfg.LLMRateLimit)

	// ──── Step 6: Start HTTP Server ────
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(log, h, limiter, cfg.FrontendURL),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		// generation calls can take a while
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", server.Addr).Msgf("remix backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

func llmModel(cfg *config.Config) string {
	if cfg.LLMProvider == "gemini" {
		return cfg.GeminiModel
	}
	return cfg.OpenAIModel
}

func visionModel(cfg *config.Config) string {
	if cfg.LLMProvider == "gemini" {
		return cfg.GeminiModel
	}
	return cfg.OpenAIVisionModel
}
