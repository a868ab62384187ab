// Package config provides configuration types and loading for quillctl.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level quillctl configuration.
type Config struct {
	// Server configures the QuillPress API server to talk to.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Storage configures where the credential pair is persisted.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Cache configures the GET response cache.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// ServerConfig configures the API endpoint and timeouts.
type ServerConfig struct {
	// URL is the base URL of the QuillPress server.
	URL string `yaml:"url" mapstructure:"url" validate:"required,http_url"`

	// Timeout is the per-request timeout (e.g. "10s").
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`

	// RefreshTimeout bounds the detached token refresh call (e.g. "10s").
	RefreshTimeout string `yaml:"refresh_timeout" mapstructure:"refresh_timeout" validate:"omitempty,duration"`
}

// StorageConfig configures credential persistence.
type StorageConfig struct {
	// Backend selects the store implementation.
	// "file" is a flock-guarded JSON file, "sqlite" a local database,
	// "memory" keeps credentials for the process lifetime only.
	Backend string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=file sqlite memory"`

	// Path is the credential file (or database) location.
	// Default: ~/.quillctl/credentials.json (credentials.db for sqlite).
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig configures the GET response cache.
type CacheConfig struct {
	// TTL is the cache entry lifetime (e.g. "30s"). "0" disables the cache.
	TTL string `yaml:"ttl" mapstructure:"ttl" validate:"omitempty,duration"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "http://localhost:8000"
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = "10s"
	}
	if c.Server.RefreshTimeout == "" {
		c.Server.RefreshTimeout = "10s"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultCredentialPath(c.Storage.Backend)
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "30s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// defaultCredentialPath picks the default credential location under the
// user's home directory.
func defaultCredentialPath(backend string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	name := "credentials.json"
	if backend == "sqlite" {
		name = "credentials.db"
	}
	return filepath.Join(home, ".quillctl", name)
}

// RequestTimeout returns the parsed per-request timeout.
// SetDefaults and Validate must have run first.
func (c *Config) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.Timeout)
	return d
}

// RefreshTimeout returns the parsed refresh timeout.
func (c *Config) RefreshTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.RefreshTimeout)
	return d
}

// CacheTTL returns the parsed cache TTL. Zero disables the cache.
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}
