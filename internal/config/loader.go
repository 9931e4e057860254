// Package config provides configuration management for the Four Factors predictor.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "FOUR_FACTORS"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	setDefaults(v)

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values when the file is absent
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults registers every key so AutomaticEnv can override keys missing from the file
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "four-factors")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")

	v.SetDefault("stats_provider.source", "nba_stats")
	v.SetDefault("stats_provider.base_url", "https://stats.nba.com/stats")
	v.SetDefault("stats_provider.snapshot_dir", "")
	v.SetDefault("stats_provider.season", "2024-25")
	v.SetDefault("stats_provider.season_type", "Regular Season")
	v.SetDefault("stats_provider.league_id", "00")
	v.SetDefault("stats_provider.api_key", "")
	v.SetDefault("stats_provider.timeout_seconds", 30)
	v.SetDefault("stats_provider.retry_attempts", 3)
	v.SetDefault("stats_provider.retry_wait_min_ms", 1000)
	v.SetDefault("stats_provider.retry_wait_max_ms", 10000)
	v.SetDefault("stats_provider.min_request_interval_ms", 600)
	v.SetDefault("stats_provider.circuit_breaker_max", 5)
	v.SetDefault("stats_provider.circuit_breaker_cooldown_seconds", 30)

	v.SetDefault("model.strategy", "logistic")
	v.SetDefault("model.scale", 28)
	v.SetDefault("model.pythagorean_exponent", 13.91)

	v.SetDefault("backtest.output_path", "prediction_results.csv")
	v.SetDefault("backtest.summary_path", "")
	v.SetDefault("backtest.bootstrap_iterations", 1000)
	v.SetDefault("backtest.confidence_level", 0.95)
	v.SetDefault("backtest.bootstrap_seed", 42)

	v.SetDefault("teams.directory_path", "nba_teams.csv")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
