// Package logger provides backtest-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/four-factors/internal/models"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger bound to one run.
func NewBacktestLogger(baseLogger *logrus.Logger, runID, strategy string) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "backtest",
			"run_id":    runID,
			"strategy":  strategy,
		}),
	}
}

// LogRunStarted logs the start of a run.
func (bl *BacktestLogger) LogRunStarted(season string, games int, scale float64) {
	bl.WithFields(logrus.Fields{
		"season": season,
		"games":  games,
		"scale":  scale,
	}).Info("Backtest started")
}

// LogPrediction logs one evaluated game.
func (bl *BacktestLogger) LogPrediction(index, total int, result models.PredictionResult) {
	bl.WithFields(logrus.Fields{
		"game":                 index,
		"of":                   total,
		"game_id":              result.GameID,
		"predicted_winner":     result.PredictedWinner,
		"predicted_winner_pct": result.PredictedWinnerPct,
		"actual_winner":        result.ActualWinner,
		"correct":              result.Correct,
	}).Info("Game predicted")
}

// LogGameSkipped logs a game excluded from the totals.
func (bl *BacktestLogger) LogGameSkipped(game models.GameRecord, err error) {
	bl.WithFields(logrus.Fields{
		"game_id":   game.GameID,
		"game_date": game.Date.Format("2006-01-02"),
		"home_team": game.HomeTeamName,
		"road_team": game.RoadTeamName,
	}).WithError(err).Warn("Game skipped")
}

// LogStatsFetched logs a provider fetch triggered by a cache miss.
func (bl *BacktestLogger) LogStatsFetched(teamID int64, location models.Location) {
	bl.WithFields(logrus.Fields{
		"team_id":  teamID,
		"location": location,
	}).Debug("Fetched team four factors")
}

// LogRunCompleted logs the run summary.
func (bl *BacktestLogger) LogRunCompleted(evaluated, failed, correct int, accuracyPct float64, cacheHits, cacheMisses uint64) {
	bl.WithFields(logrus.Fields{
		"evaluated":    evaluated,
		"failed":       failed,
		"correct":      correct,
		"accuracy_pct": accuracyPct,
		"cache_hits":   cacheHits,
		"cache_misses": cacheMisses,
	}).Info("Backtest completed")
}
