package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/sentry-coach/internal/config"
	"github.com/jwebster45206/sentry-coach/internal/handlers"
	"github.com/jwebster45206/sentry-coach/internal/logger"
	"github.com/jwebster45206/sentry-coach/internal/middleware"
	"github.com/jwebster45206/sentry-coach/internal/services"
	"github.com/jwebster45206/sentry-coach/internal/session"
	"github.com/jwebster45206/sentry-coach/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Sentry Coach API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	if err != nil {
		log.Error("Invalid storage configuration", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	llmService, err := services.NewLLMService(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to create LLM service", "error", err)
		os.Exit(1)
	}
	if llmService != nil {
		if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
			log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
			os.Exit(1)
		}
	}

	processor := session.NewProcessor(store, llmService, log, session.Options{
		LLMTimeout: cfg.LLMTimeout,
	})

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, processor.LLMConfigured(), log))

	sessionHandler := handlers.NewSessionHandler(processor, cfg.PDFFontPath, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	coreHandler := handlers.NewCoreHandler(nil, log)
	mux.Handle("/v1/evaluate", coreHandler)
	mux.Handle("/v1/normalize", coreHandler)
	mux.Handle("/v1/suggestions", coreHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 30*time.Second, // a turn can wait out the full model timeout
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if closer, ok := llmService.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error("Error closing LLM client", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
