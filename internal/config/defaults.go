package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultLogLevel           = "info"
	DefaultPort               = 8080
	DefaultMaxMessageSize     = 64 * 1024
	DefaultReadTimeout        = 15 * time.Second
	DefaultWriteTimeout       = 15 * time.Second
	DefaultIdleTimeout        = 60 * time.Second
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultRateBurst          = 20
	DefaultRateRefillInterval = time.Second
)

func (c *RelayConfig) applyDefaults() {
	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Limits defaults
	if c.Limits.RateBurst == 0 {
		c.Limits.RateBurst = DefaultRateBurst
	}
	if c.Limits.RateRefillInterval == 0 {
		c.Limits.RateRefillInterval = DefaultRateRefillInterval
	}

	// Session defaults: PendingCallTTL stays zero (expiry disabled) unless
	// configured; an unanswered call then persists until reject/disconnect.
}
