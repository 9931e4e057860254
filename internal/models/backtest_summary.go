package models

// ConfidenceBand is the accuracy of the predictions whose winner
// confidence falls inside one band
type ConfidenceBand struct {
	Count       int     `json:"count"`
	Correct     int     `json:"correct"`
	AccuracyPct float64 `json:"accuracy_pct"`
}

// BacktestSummary aggregates the results of one backtest run
type BacktestSummary struct {
	TotalGames          int            `json:"total_games"`
	Correct             int            `json:"correct"`
	Incorrect           int            `json:"incorrect"`
	AccuracyPct         float64        `json:"accuracy_pct"`
	AvgWinnerConfidence float64        `json:"avg_winner_confidence"`
	HighConfidence      ConfidenceBand `json:"high_confidence"`
	CloseGames          ConfidenceBand `json:"close_games"`
}

// HasResults reports whether any game was evaluated
func (s BacktestSummary) HasResults() bool {
	return s.TotalGames > 0
}
