package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/four-factors/internal/models"
)

// Confidence band boundaries, in percent
const (
	HighConfidenceThreshold = 70.0
	CloseGameThreshold      = 55.0
)

// RoundPct rounds a percentage to two decimal places
func RoundPct(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Summarize aggregates prediction results. Winner confidence is averaged
// over the values as stored, which the runner rounds to two decimals.
func Summarize(results []models.PredictionResult) models.BacktestSummary {
	summary := models.BacktestSummary{TotalGames: len(results)}
	if len(results) == 0 {
		return summary
	}

	confidenceSum := decimal.Zero
	for _, r := range results {
		if r.Correct {
			summary.Correct++
		}
		confidenceSum = confidenceSum.Add(decimal.NewFromFloat(r.PredictedWinnerPct))

		if r.PredictedWinnerPct > HighConfidenceThreshold {
			summary.HighConfidence.Count++
			if r.Correct {
				summary.HighConfidence.Correct++
			}
		}
		if r.PredictedWinnerPct < CloseGameThreshold {
			summary.CloseGames.Count++
			if r.Correct {
				summary.CloseGames.Correct++
			}
		}
	}

	summary.Incorrect = summary.TotalGames - summary.Correct
	summary.AccuracyPct = percentage(summary.Correct, summary.TotalGames)
	summary.AvgWinnerConfidence, _ = confidenceSum.Div(decimal.NewFromInt(int64(len(results)))).Float64()
	summary.HighConfidence.AccuracyPct = percentage(summary.HighConfidence.Correct, summary.HighConfidence.Count)
	summary.CloseGames.AccuracyPct = percentage(summary.CloseGames.Correct, summary.CloseGames.Count)

	return summary
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
