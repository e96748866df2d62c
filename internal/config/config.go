// Package config loads runtime configuration from flags, environment
// variables and optional .env files, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultOutputPath  = "data/unified_locations.json"
	DefaultTimeout     = 10 * time.Minute
	DefaultConcurrency = 4

	// GreenMotion and USave share the same feed API, keyed by fleet id.
	DefaultGreenMotionFleetID = "1"
	DefaultUSaveFleetID       = "2"
)

// Feed holds the connection settings for one remote supplier feed. An empty
// BaseURL means the collector's built-in production endpoint.
type Feed struct {
	BaseURL string
	FleetID string
}

// Config is the resolved runtime configuration for a reconciliation run.
// Timeout bounds the whole run, including every supplier fetch.
type Config struct {
	OutputPath  string
	Timeout     time.Duration
	Concurrency int

	GreenMotion Feed
	USave       Feed
	Surprice    Feed
}

// Init wires viper to the LOCMERGE_ environment namespace and loads any
// .env files present in the working directory. Call once at startup,
// before flags are bound.
func Init() {
	loadEnvFiles()

	viper.SetEnvPrefix("LOCMERGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("output", DefaultOutputPath)
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("concurrency", DefaultConcurrency)
	viper.SetDefault("greenmotion.fleet-id", DefaultGreenMotionFleetID)
	viper.SetDefault("usave.fleet-id", DefaultUSaveFleetID)
}

// Load resolves the effective configuration from viper.
func Load() (*Config, error) {
	cfg := &Config{
		OutputPath:  viper.GetString("output"),
		Timeout:     viper.GetDuration("timeout"),
		Concurrency: viper.GetInt("concurrency"),
		GreenMotion: Feed{
			BaseURL: viper.GetString("greenmotion.base-url"),
			FleetID: viper.GetString("greenmotion.fleet-id"),
		},
		USave: Feed{
			BaseURL: viper.GetString("usave.base-url"),
			FleetID: viper.GetString("usave.fleet-id"),
		},
		Surprice: Feed{
			BaseURL: viper.GetString("surprice.base-url"),
		},
	}

	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	return cfg, nil
}

// loadEnvFiles loads .env and .env.local. godotenv never overrides values
// already present in the environment, so real env vars always win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
		}
	}
}
