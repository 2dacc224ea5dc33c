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

	"github.com/openclaw/a2a-bridge/internal/config"
	"github.com/openclaw/a2a-bridge/internal/gateway"
	transport "github.com/openclaw/a2a-bridge/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting a2a-bridge...")
	log.Printf("Listen port: %d", cfg.ListenPort)
	log.Printf("Gateway: %s", cfg.GatewayURL)
	if cfg.AgentID != "" {
		log.Printf("Agent: %s", cfg.AgentID)
	} else {
		log.Printf("Agent: (default)")
	}
	log.Printf("Agent cards: %s", cfg.AgentCardDir)

	// Initialize gateway client
	client := gateway.NewClient(cfg.GatewayURL, cfg.GatewayToken, cfg.AgentID, cfg.GatewayTimeout)

	// Create server
	e := transport.NewServer(cfg, client)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.ListenPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down a2a-bridge...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("a2a-bridge stopped")
}
