// Package config loads and validates relay configuration from YAML files
// with ${VAR} environment expansion.
package config
