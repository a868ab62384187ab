package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment
// variables. If configFile is empty, it searches for quillctl.yaml/.yml in
// standard locations. The search requires an explicit YAML extension so the
// binary itself (same base name, no extension) is never matched.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file found in any standard location.
		// Set name/type without search paths so ReadInConfig returns
		// ConfigFileNotFoundError (handled gracefully by callers).
		viper.SetConfigName("quillctl")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: QUILLCTL_SERVER_URL
	viper.SetEnvPrefix("QUILLCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a quillctl config file
// with an explicit YAML extension (.yaml or .yml).
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".quillctl"),
	}
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "quillctl"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds all config keys for environment variable support.
// Example: QUILLCTL_SERVER_URL overrides server.url
func bindNestedEnvKeys() {
	_ = viper.BindEnv("server.url")
	_ = viper.BindEnv("server.timeout")
	_ = viper.BindEnv("server.refresh_timeout")

	_ = viper.BindEnv("storage.backend")
	_ = viper.BindEnv("storage.path")

	_ = viper.BindEnv("cache.ttl")

	_ = viper.BindEnv("log_level")
}

// LoadConfig reads the configuration file, applies environment overrides,
// sets defaults, and validates the result.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with env vars and defaults only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path to the configuration file that was
// loaded, or an empty string when running on env vars and defaults only.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
