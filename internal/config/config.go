// Package config provides configuration for the bridge.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the bridge configuration.
type Config struct {
	// Server settings
	ListenPort int

	// Gateway settings
	GatewayURL   string
	GatewayToken string
	AgentID      string

	// Agent card discovery
	AgentCardDir string

	// Timeouts
	GatewayTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		ListenPort:     getEnvInt("LISTEN_PORT", 8080),
		GatewayURL:     getEnv("GATEWAY_URL", "http://localhost:18789"),
		GatewayToken:   getEnv("GATEWAY_TOKEN", ""),
		AgentID:        getEnv("AGENT_ID", ""),
		AgentCardDir:   getEnv("AGENT_CARD_DIR", "/srv/.well-known"),
		GatewayTimeout: time.Duration(getEnvInt("GATEWAY_TIMEOUT_MS", 300000)) * time.Millisecond,
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
