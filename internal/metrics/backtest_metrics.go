// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by strategy and status",
	}, []string{"strategy", "status"})

	BacktestGamesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_games_total",
		Help:      "Total number of backtested games by outcome",
	}, []string{"strategy", "outcome"})
)

// Backtest gauges and histograms
var (
	BacktestAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_accuracy_percent",
		Help:      "Accuracy of the most recent backtest run",
	}, []string{"strategy", "season"})

	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})

	PredictedWinnerConfidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "predicted_winner_confidence_percent",
		Help:      "Predicted winner win probability for backtested games",
		Buckets:   []float64{50, 55, 60, 65, 70, 75, 80, 90, 100},
	}, []string{"strategy"})
)

// Game outcomes
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeFailed    = "failed"
)

// RecordBacktestRun records a backtest run event.
// status should be one of: "completed", "aborted"
func RecordBacktestRun(strategy, status string, durationSeconds float64) {
	BacktestRunsTotal.WithLabelValues(strategy, status).Inc()
	BacktestDuration.Observe(durationSeconds)
}

// RecordGameOutcome records the outcome of one backtested game.
func RecordGameOutcome(strategy, outcome string) {
	BacktestGamesTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordWinnerConfidence records the predicted winner's probability.
func RecordWinnerConfidence(strategy string, pct float64) {
	PredictedWinnerConfidence.WithLabelValues(strategy).Observe(pct)
}

// UpdateAccuracy sets the accuracy of the latest run.
func UpdateAccuracy(strategy, season string, accuracyPct float64) {
	BacktestAccuracy.WithLabelValues(strategy, season).Set(accuracyPct)
}
