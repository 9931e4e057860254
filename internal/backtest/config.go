package backtest

import (
	"fmt"
	"strings"

	"github.com/yourusername/four-factors/internal/config"
	"github.com/yourusername/four-factors/internal/fourfactors"
)

// BacktestConfig extends core config with backtest-specific settings
type BacktestConfig struct {
	Season              string
	SeasonType          string
	Strategy            string
	Scale               float64
	PythagoreanExponent float64
	OutputPath          string
	SummaryPath         string
	Bootstrap           BootstrapConfig
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.Config) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("config is required")
	}

	bt := BacktestConfig{
		Season:              cfg.StatsProvider.Season,
		SeasonType:          cfg.StatsProvider.SeasonType,
		Strategy:            cfg.Model.Strategy,
		Scale:               cfg.Model.Scale,
		PythagoreanExponent: cfg.Model.PythagoreanExponent,
		OutputPath:          cfg.Backtest.OutputPath,
		SummaryPath:         cfg.Backtest.SummaryPath,
		Bootstrap: BootstrapConfig{
			Iterations:      cfg.Backtest.BootstrapIterations,
			ConfidenceLevel: cfg.Backtest.ConfidenceLevel,
			Seed:            cfg.Backtest.BootstrapSeed,
		},
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if b.Season == "" {
		return fmt.Errorf("season is required")
	}
	if b.Scale <= 0 {
		return fmt.Errorf("scale must be positive")
	}
	if b.Strategy == fourfactors.StrategyScoreProjection && b.PythagoreanExponent <= 0 {
		return fmt.Errorf("pythagorean exponent must be positive")
	}
	if b.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if b.ResolvedSummaryPath() == b.OutputPath {
		return fmt.Errorf("summary path must differ from output path")
	}
	return nil
}

// ResolvedSummaryPath returns the summary file path, derived from the
// results path when not set explicitly
func (b BacktestConfig) ResolvedSummaryPath() string {
	if b.SummaryPath != "" {
		return b.SummaryPath
	}
	if strings.HasSuffix(b.OutputPath, ".csv") {
		return strings.TrimSuffix(b.OutputPath, ".csv") + "_summary.txt"
	}
	return b.OutputPath + "_summary.txt"
}
