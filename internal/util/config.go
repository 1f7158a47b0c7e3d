// Package util provides configuration and logging helpers for lanscope.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Ping sweep settings
	SweepConcurrency int           `mapstructure:"sweep_concurrency"`
	SweepTimeout     time.Duration `mapstructure:"sweep_timeout"`

	// Port scan settings
	ScanConcurrency int           `mapstructure:"scan_concurrency"`
	ScanTimeout     time.Duration `mapstructure:"scan_timeout"`

	// Connectivity diagnostics
	PingCount int `mapstructure:"ping_count"`
	MaxHops   int `mapstructure:"max_hops"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "console",

		SweepConcurrency: 128,
		SweepTimeout:     500 * time.Millisecond,

		ScanConcurrency: 50,
		ScanTimeout:     500 * time.Millisecond,

		PingCount: 4,
		MaxHops:   30,
	}
}

// LoadConfig loads configuration from file and environment.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, _ := os.UserHomeDir()
	cfgDir := filepath.Join(homeDir, ".lanscope")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(cfgDir)
	viper.AddConfigPath(".")

	viper.SetDefault("log_level", cfg.LogLevel)
	viper.SetDefault("log_format", cfg.LogFormat)
	viper.SetDefault("sweep_concurrency", cfg.SweepConcurrency)
	viper.SetDefault("sweep_timeout", cfg.SweepTimeout)
	viper.SetDefault("scan_concurrency", cfg.ScanConcurrency)
	viper.SetDefault("scan_timeout", cfg.ScanTimeout)
	viper.SetDefault("ping_count", cfg.PingCount)
	viper.SetDefault("max_hops", cfg.MaxHops)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
