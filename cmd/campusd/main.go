/*
Package main is the entry point for the CampusCraft server.

It is responsible for loading configuration, initializing the global logging
system, connecting PostgreSQL and object storage, starting the messaging hub,
and gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bini-2002/campuscraft/internal/app/assistant"
	"github.com/Bini-2002/campuscraft/internal/app/db"
	"github.com/Bini-2002/campuscraft/internal/app/messaging"
	"github.com/Bini-2002/campuscraft/internal/app/storage"
	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/configs"
	"github.com/Bini-2002/campuscraft/internal/handler"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("assistant_enabled", cfg.AssistantAPIKey != "").
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect PostgreSQL and run migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	dataStore := store.New(pool)

	// Connect object storage
	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage service")
	}

	// Initialize the AI assistant proxy (disabled without an API key)
	assistantService, err := assistant.New(ctx, cfg.AssistantAPIKey, cfg.AssistantModel)
	if err != nil {
		logx.Fatal(err, "Failed to initialize assistant service")
	}

	// Start the realtime messaging hub
	hub := messaging.NewHub(dataStore)

	deps := &handler.AppDeps{
		Config:    cfg,
		Store:     dataStore,
		Storage:   storageService,
		Hub:       hub,
		Assistant: assistantService,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		// No WriteTimeout: SSE assistant streams and WebSocket connections
		// outlive any sane global write deadline.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("CampusCraft Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
