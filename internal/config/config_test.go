package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
log:
  level: debug
server:
  port: 9090
  allowed_origins:
    - https://app.example.com
limits:
  rate_burst: 50
session:
  pending_call_ttl: 30s
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Limits.RateBurst != 50 {
		t.Errorf("Limits.RateBurst = %d, want 50", cfg.Limits.RateBurst)
	}
	if cfg.Session.PendingCallTTL != 30*time.Second {
		t.Errorf("Session.PendingCallTTL = %v, want 30s", cfg.Session.PendingCallTTL)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_RELAY_ORIGIN", "https://relay.example.com")

	yaml := `
server:
  allowed_origins:
    - ${TEST_RELAY_ORIGIN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.AllowedOrigins[0] != "https://relay.example.com" {
		t.Errorf("Server.AllowedOrigins[0] = %q, want env-expanded value", cfg.Server.AllowedOrigins[0])
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "log:\n  level: info\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.MaxMessageSize != DefaultMaxMessageSize {
		t.Errorf("Server.MaxMessageSize = %d, want default %d", cfg.Server.MaxMessageSize, DefaultMaxMessageSize)
	}
	if cfg.Limits.RateBurst != DefaultRateBurst {
		t.Errorf("Limits.RateBurst = %d, want default %d", cfg.Limits.RateBurst, DefaultRateBurst)
	}
	if cfg.Session.PendingCallTTL != 0 {
		t.Errorf("Session.PendingCallTTL = %v, want expiry disabled by default", cfg.Session.PendingCallTTL)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want wildcard default", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "server: [not a mapping")

	if _, err := Load(path); err == nil {
		t.Error("Load accepted invalid yaml")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RelayConfig)
		wantErr bool
	}{
		{"defaults valid", func(c *RelayConfig) {}, false},
		{"bad log level", func(c *RelayConfig) { c.Log.Level = "verbose" }, true},
		{"port too low", func(c *RelayConfig) { c.Server.Port = 0 }, true},
		{"port too high", func(c *RelayConfig) { c.Server.Port = 70000 }, true},
		{"zero message size", func(c *RelayConfig) { c.Server.MaxMessageSize = 0 }, true},
		{"zero rate burst", func(c *RelayConfig) { c.Limits.RateBurst = 0 }, true},
		{"negative refill", func(c *RelayConfig) { c.Limits.RateRefillInterval = -time.Second }, true},
		{"negative ttl", func(c *RelayConfig) { c.Session.PendingCallTTL = -time.Minute }, true},
		{"zero ttl ok", func(c *RelayConfig) { c.Session.PendingCallTTL = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
