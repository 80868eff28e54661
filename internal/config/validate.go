package config

import (
	"errors"
	"fmt"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks that all required fields are set and values are valid.
func (c *RelayConfig) Validate() error {
	if _, ok := validLogLevels[c.Log.Level]; !ok {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxMessageSize < 1 {
		return errors.New("server.max_message_size must be >= 1")
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("server.write_timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}

	if c.Limits.RateBurst < 1 {
		return errors.New("limits.rate_burst must be >= 1")
	}
	if c.Limits.RateRefillInterval <= 0 {
		return errors.New("limits.rate_refill_interval must be positive")
	}

	if c.Session.PendingCallTTL < 0 {
		return errors.New("session.pending_call_ttl must not be negative")
	}

	return nil
}
