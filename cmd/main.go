package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"webgen_server/config"
	"webgen_server/internal/ai"
	"webgen_server/internal/ai/prompts"
	"webgen_server/internal/api"
)

func main() {
	// --- Load .env file ---
	// Environment variables from a .env file must be in place BEFORE viper
	// loads the config.
	err := godotenv.Load()
	if err != nil {
		// A missing .env is normal in production; only warn on other errors.
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".") // Load from config.yaml or env vars
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// The gateway credential is a startup fault, not a per-request error:
	// refuse to serve at all without it.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("AI service not configured: %v", err)
	}

	// --- Dependency Initialization ---
	generator := ai.NewGenerator(ai.Config{
		APIKey:          cfg.GatewayAPIKey,
		BaseURL:         cfg.GatewayBaseURL,
		Model:           cfg.GenerationModel,
		PromptStyle:     prompts.Style(cfg.PromptStyle),
		RequireComplete: cfg.RequireComplete,
	})
	apiHandler := api.NewAPIHandler(generator)

	// --- Start API Server ---
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := api.NewRouter(apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Write timeout must cover one full LLM gateway round trip.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
