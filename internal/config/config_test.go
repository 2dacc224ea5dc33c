package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != 8080 {
		t.Fatalf("unexpected port: %d", cfg.ListenPort)
	}
	if cfg.GatewayURL != "http://localhost:18789" {
		t.Fatalf("unexpected gateway URL: %s", cfg.GatewayURL)
	}
	if cfg.AgentCardDir != "/srv/.well-known" {
		t.Fatalf("unexpected card dir: %s", cfg.AgentCardDir)
	}
	if cfg.GatewayTimeout != 300*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.GatewayTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LISTEN_PORT", "9090")
	t.Setenv("GATEWAY_URL", "http://gateway:18789")
	t.Setenv("GATEWAY_TOKEN", "secret")
	t.Setenv("AGENT_ID", "openclaw")
	t.Setenv("GATEWAY_TIMEOUT_MS", "5000")

	cfg := Load()

	if cfg.ListenPort != 9090 || cfg.GatewayURL != "http://gateway:18789" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.GatewayToken != "secret" || cfg.AgentID != "openclaw" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.GatewayTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.GatewayTimeout)
	}
}

func TestLoadIgnoresInvalidInt(t *testing.T) {
	t.Setenv("LISTEN_PORT", "not-a-number")

	if cfg := Load(); cfg.ListenPort != 8080 {
		t.Fatalf("expected default port, got %d", cfg.ListenPort)
	}
}
