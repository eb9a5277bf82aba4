package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentproxy-backend/internal/config"
	"agentproxy-backend/internal/handlers"
	"agentproxy-backend/internal/router"
	"agentproxy-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Multimodal Agent Backend Proxy...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Colab Relay Service ────
	colabService := services.NewColabService(cfg.ColabAPIURL, cfg.GenerateTimeout, cfg.StatusTimeout)
	if colabService.Configured() {
		log.Printf("✓ Colab model server: %s", cfg.ColabAPIURL)
	} else {
		log.Println("⚠ COLAB_API_URL not set — generation disabled until configured in .env")
	}

	// ──── Initialize Handlers ────
	relayHandler := handlers.NewRelayHandler(colabService)
	staticHandler := handlers.NewStaticHandler(cfg.FrontendDir)

	// ──── Step 3: Start HTTP Server ────
	r := router.New(relayHandler, staticHandler, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// Generation responses can take minutes to arrive from Colab, so the
		// write timeout must outlast the relay's generate timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenerateTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Backend proxy ready on http://localhost:%s", cfg.Port)
	log.Printf("  Frontend: http://localhost:%s/", cfg.Port)
	log.Printf("  API:      http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
