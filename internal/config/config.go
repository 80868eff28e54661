package config

import "time"

// RelayConfig is the root configuration for a relay instance.
type RelayConfig struct {
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Limits  LimitsConfig  `yaml:"limits"`
	Session SessionConfig `yaml:"session"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ServerConfig holds HTTP/WebSocket listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	MaxMessageSize  int64         `yaml:"max_message_size"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LimitsConfig holds per-connection rate limiting settings.
type LimitsConfig struct {
	RateBurst          int           `yaml:"rate_burst"`
	RateRefillInterval time.Duration `yaml:"rate_refill_interval"`
}

// SessionConfig holds relay core settings.
type SessionConfig struct {
	// PendingCallTTL expires unanswered call requests. Zero disables expiry.
	PendingCallTTL time.Duration `yaml:"pending_call_ttl"`
}
