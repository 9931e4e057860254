package models

import "time"

// PredictionResult is the model's call for one backtested game
type PredictionResult struct {
	GameID             string    `json:"game_id"`
	GameDate           time.Time `json:"game_date"`
	PredictedWinner    string    `json:"predicted_winner"`
	PredictedWinnerPct float64   `json:"predicted_winner_pct"`
	PredictedLoser     string    `json:"predicted_loser"`
	PredictedLoserPct  float64   `json:"predicted_loser_pct"`
	ActualWinner       string    `json:"actual_winner"`
	ActualLoser        string    `json:"actual_loser"`
	Scale              float64   `json:"scale"`
	Correct            bool      `json:"correct"`
	HomeScore          *float64  `json:"home_score,omitempty"`
	RoadScore          *float64  `json:"road_score,omitempty"`
}

// MeetsThreshold checks if the predicted winner's probability is above the given percentage
func (p PredictionResult) MeetsThreshold(pct float64) bool {
	return p.PredictedWinnerPct > pct
}
