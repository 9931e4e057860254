// Package config provides configuration management for the Four Factors predictor.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	StatsProvider StatsProviderConfig `mapstructure:"stats_provider" validate:"required"`
	Model         ModelConfig         `mapstructure:"model" validate:"required"`
	Backtest      BacktestConfig      `mapstructure:"backtest" validate:"required"`
	Teams         TeamsConfig         `mapstructure:"teams" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
}

// StatsProviderConfig represents the stats provider connection and politeness settings
type StatsProviderConfig struct {
	Source                        string `mapstructure:"source" validate:"required,oneof=nba_stats snapshot"`
	BaseURL                       string `mapstructure:"base_url" validate:"required_if=Source nba_stats,omitempty,url"`
	SnapshotDir                   string `mapstructure:"snapshot_dir" validate:"required_if=Source snapshot"`
	Season                        string `mapstructure:"season" validate:"required,season"`
	SeasonType                    string `mapstructure:"season_type" validate:"required,oneof='Regular Season' Playoffs"`
	LeagueID                      string `mapstructure:"league_id" validate:"required,numeric"`
	APIKey                        string `mapstructure:"api_key"`
	TimeoutSeconds                int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts                 int    `mapstructure:"retry_attempts" validate:"gte=0,lte=10"`
	RetryWaitMinMs                int    `mapstructure:"retry_wait_min_ms" validate:"gte=0"`
	RetryWaitMaxMs                int    `mapstructure:"retry_wait_max_ms" validate:"gtefield=RetryWaitMinMs"`
	MinRequestIntervalMs          int    `mapstructure:"min_request_interval_ms" validate:"gte=0"`
	CircuitBreakerMax             int    `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CircuitBreakerCooldownSeconds int    `mapstructure:"circuit_breaker_cooldown_seconds" validate:"gte=0"`
}

// ModelConfig represents win probability model parameters
type ModelConfig struct {
	Strategy            string  `mapstructure:"strategy" validate:"required,strategy"`
	Scale               float64 `mapstructure:"scale" validate:"required,gt=0"`
	PythagoreanExponent float64 `mapstructure:"pythagorean_exponent" validate:"required,gt=0"`
}

// BacktestConfig represents backtesting output configuration
type BacktestConfig struct {
	OutputPath          string  `mapstructure:"output_path" validate:"required"`
	SummaryPath         string  `mapstructure:"summary_path"`
	BootstrapIterations int     `mapstructure:"bootstrap_iterations" validate:"gte=0,lte=100000"`
	ConfidenceLevel     float64 `mapstructure:"confidence_level" validate:"gte=0,lt=1"`
	BootstrapSeed       int64   `mapstructure:"bootstrap_seed"`
}

// TeamsConfig represents the team directory location
type TeamsConfig struct {
	DirectoryPath string `mapstructure:"directory_path" validate:"required"`
}

// MetricsConfig represents metrics and health endpoint configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RequestTimeout returns the per-request provider timeout
func (c *StatsProviderConfig) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MinRequestInterval returns the minimum delay between provider requests
func (c *StatsProviderConfig) MinRequestInterval() time.Duration {
	return time.Duration(c.MinRequestIntervalMs) * time.Millisecond
}

// RetryWaitMin returns the minimum retry backoff
func (c *StatsProviderConfig) RetryWaitMin() time.Duration {
	return time.Duration(c.RetryWaitMinMs) * time.Millisecond
}

// CircuitBreakerCooldown returns how long an open circuit breaker waits before a trial request
func (c *StatsProviderConfig) CircuitBreakerCooldown() time.Duration {
	return time.Duration(c.CircuitBreakerCooldownSeconds) * time.Second
}

// RetryWaitMax returns the maximum retry backoff
func (c *StatsProviderConfig) RetryWaitMax() time.Duration {
	return time.Duration(c.RetryWaitMaxMs) * time.Millisecond
}
