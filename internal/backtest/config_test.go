package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		StatsProvider: config.StatsProviderConfig{Season: "2024-25", SeasonType: "Regular Season"},
		Model:         config.ModelConfig{Strategy: "logistic", Scale: 27, PythagoreanExponent: 13.91},
		Backtest:      config.BacktestConfig{OutputPath: "results/run.csv"},
	}

	bt, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2024-25", bt.Season)
	assert.Equal(t, 27.0, bt.Scale)
	assert.Equal(t, "results/run_summary.txt", bt.ResolvedSummaryPath())

	_, err = FromConfig(nil)
	assert.Error(t, err)
}

func TestBacktestConfigValidate(t *testing.T) {
	valid := BacktestConfig{Season: "2024-25", Strategy: "logistic", Scale: 28, OutputPath: "out.csv"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*BacktestConfig)
	}{
		{"no season", func(c *BacktestConfig) { c.Season = "" }},
		{"zero scale", func(c *BacktestConfig) { c.Scale = 0 }},
		{"no output", func(c *BacktestConfig) { c.OutputPath = "" }},
		{"summary collides", func(c *BacktestConfig) { c.SummaryPath = "out.csv" }},
		{"projection without exponent", func(c *BacktestConfig) { c.Strategy = "score_projection" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolvedSummaryPath(t *testing.T) {
	assert.Equal(t, "custom.txt", BacktestConfig{OutputPath: "a.csv", SummaryPath: "custom.txt"}.ResolvedSummaryPath())
	assert.Equal(t, "results_summary.txt", BacktestConfig{OutputPath: "results"}.ResolvedSummaryPath())
}
