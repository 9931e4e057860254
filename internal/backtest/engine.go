package backtest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/four-factors/internal/datasource"
	"github.com/yourusername/four-factors/internal/fourfactors"
	"github.com/yourusername/four-factors/internal/logger"
	"github.com/yourusername/four-factors/internal/metrics"
	"github.com/yourusername/four-factors/internal/models"
	"github.com/yourusername/four-factors/internal/teams"
)

// Run statuses recorded in metrics
const (
	runStatusCompleted = "completed"
	runStatusAborted   = "aborted"
)

// GameOutcome is the result of evaluating one game: exactly one of Result and Err is set
type GameOutcome struct {
	Game   models.GameRecord
	Result *models.PredictionResult
	Err    error
}

// GameFailure records a game excluded from the totals
type GameFailure struct {
	GameID   string
	Date     time.Time
	HomeTeam string
	RoadTeam string
	Err      error
}

func (f GameFailure) Error() string {
	return fmt.Sprintf("game %s (%s @ %s, %s): %v", f.GameID, f.RoadTeam, f.HomeTeam, f.Date.Format("2006-01-02"), f.Err)
}

// Unwrap exposes the underlying error
func (f GameFailure) Unwrap() error {
	return f.Err
}

// RunResult is everything a backtest run produced
type RunResult struct {
	RunID      string
	Season     string
	Strategy   string
	Scale      float64
	StartedAt  time.Time
	FinishedAt time.Time
	League     models.LeagueAverages
	Games      ReconstructStats
	Results    []models.PredictionResult
	Failures   []GameFailure
	Cache      CacheStats
	Summary    models.BacktestSummary
	Bootstrap  *BootstrapResult
}

// Duration returns the wall-clock duration of the run
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Runner orchestrates backtesting runs
type Runner struct {
	config    BacktestConfig
	provider  datasource.StatsProvider
	strategy  fourfactors.Strategy
	directory *teams.Directory
	logger    *logrus.Logger
	progress  io.Writer
}

// NewRunner creates a new backtest runner
func NewRunner(cfg BacktestConfig, provider datasource.StatsProvider, strat fourfactors.Strategy, directory *teams.Directory, log *logrus.Logger) (*Runner, error) {
	if provider == nil {
		return nil, fmt.Errorf("stats provider is required")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is required")
	}
	if log == nil {
		log = logrus.New()
	}

	return &Runner{
		config:    cfg,
		provider:  provider,
		strategy:  strat,
		directory: directory,
		logger:    log,
	}, nil
}

// SetProgressWriter enables per-game console progress lines
func (r *Runner) SetProgressWriter(w io.Writer) {
	r.progress = w
}

// Config returns the backtest configuration
func (r *Runner) Config() BacktestConfig {
	return r.config
}

// Run loads the season game log and replays every reconstructed game
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	rows, err := r.provider.SeasonGameLog(ctx)
	if err != nil {
		metrics.RecordBacktestRun(r.strategy.Name(), runStatusAborted, 0)
		return nil, fmt.Errorf("failed to load season game log: %w", err)
	}

	games, stats := ReconstructGames(rows)
	r.logger.WithFields(logrus.Fields{
		"rows":    stats.Rows,
		"games":   stats.Games,
		"dropped": stats.Dropped,
	}).Debug("Reconstructed games from game log")

	result, err := r.RunGames(ctx, games)
	if err != nil {
		return nil, err
	}
	result.Games = stats
	return result, nil
}

// RunGames replays the given games in order. League averages are fetched
// once; failing to get them aborts the run. Per-game failures are recorded
// and skipped.
func (r *Runner) RunGames(ctx context.Context, games []models.GameRecord) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.New().String(),
		Season:    r.config.Season,
		Strategy:  r.strategy.Name(),
		Scale:     r.strategy.Scale(),
		StartedAt: time.Now().UTC(),
		Games:     ReconstructStats{Games: len(games)},
		Results:   make([]models.PredictionResult, 0, len(games)),
	}
	runLogger := logger.NewBacktestLogger(r.logger, result.RunID, result.Strategy)

	league, err := r.provider.LeagueAverages(ctx)
	if err != nil {
		metrics.RecordBacktestRun(result.Strategy, runStatusAborted, time.Since(result.StartedAt).Seconds())
		return nil, fmt.Errorf("failed to load league averages: %w", err)
	}
	if r.strategy.RequiresLeaguePoints() && !league.HasPoints() {
		metrics.RecordBacktestRun(result.Strategy, runStatusAborted, time.Since(result.StartedAt).Seconds())
		return nil, fmt.Errorf("strategy %s needs league average points: %w", result.Strategy, models.ErrDataUnavailable)
	}
	result.League = league

	statsCache := NewStatsCache(r.provider)
	statsCache.OnFetch(func(key CacheKey) {
		runLogger.LogStatsFetched(key.TeamID, key.Location)
	})

	runLogger.LogRunStarted(result.Season, len(games), result.Scale)

	for i, game := range games {
		if err := ctx.Err(); err != nil {
			metrics.RecordBacktestRun(result.Strategy, runStatusAborted, time.Since(result.StartedAt).Seconds())
			return nil, fmt.Errorf("backtest interrupted after %d of %d games: %w", i, len(games), err)
		}

		r.printf("Processing game %d/%d: %s vs %s\n", i+1, len(games), r.teamName(game.HomeTeamID, game.HomeTeamName), r.teamName(game.RoadTeamID, game.RoadTeamName))

		outcome := r.evaluate(ctx, game, league, statsCache)
		if outcome.Err != nil {
			failure := GameFailure{
				GameID:   game.GameID,
				Date:     game.Date,
				HomeTeam: r.teamName(game.HomeTeamID, game.HomeTeamName),
				RoadTeam: r.teamName(game.RoadTeamID, game.RoadTeamName),
				Err:      outcome.Err,
			}
			result.Failures = append(result.Failures, failure)
			runLogger.LogGameSkipped(game, outcome.Err)
			metrics.RecordGameOutcome(result.Strategy, metrics.OutcomeFailed)
			r.printf("  Error processing game: %v\n\n", outcome.Err)
			continue
		}

		prediction := *outcome.Result
		result.Results = append(result.Results, prediction)
		runLogger.LogPrediction(i+1, len(games), prediction)

		gameOutcome := metrics.OutcomeIncorrect
		mark := "✗"
		if prediction.Correct {
			gameOutcome = metrics.OutcomeCorrect
			mark = "✓"
		}
		metrics.RecordGameOutcome(result.Strategy, gameOutcome)
		metrics.RecordWinnerConfidence(result.Strategy, prediction.PredictedWinnerPct)
		r.printf("  Prediction: %s (%.1f%%) | Actual: %s | %s\n\n", prediction.PredictedWinner, prediction.PredictedWinnerPct, prediction.ActualWinner, mark)
	}

	result.FinishedAt = time.Now().UTC()
	result.Cache = statsCache.Stats()
	result.Summary = Summarize(result.Results)

	if r.config.Bootstrap.Iterations > 0 && len(result.Results) > 0 {
		interval, err := BootstrapAccuracy(ctx, result.Results, r.config.Bootstrap)
		if err != nil {
			r.logger.WithError(err).Warn("Accuracy confidence interval unavailable")
		} else {
			result.Bootstrap = &interval
		}
	}

	metrics.RecordBacktestRun(result.Strategy, runStatusCompleted, result.Duration().Seconds())
	metrics.UpdateAccuracy(result.Strategy, result.Season, result.Summary.AccuracyPct)
	runLogger.LogRunCompleted(result.Summary.TotalGames, len(result.Failures), result.Summary.Correct,
		result.Summary.AccuracyPct, result.Cache.Hits, result.Cache.Misses)

	return result, nil
}

// evaluate predicts one game; it never aborts the run
func (r *Runner) evaluate(ctx context.Context, game models.GameRecord, league models.LeagueAverages, statsCache *StatsCache) GameOutcome {
	home, err := statsCache.Get(ctx, game.HomeTeamID, models.LocationHome)
	if err != nil {
		return GameOutcome{Game: game, Err: fmt.Errorf("home stats: %w", err)}
	}
	road, err := statsCache.Get(ctx, game.RoadTeamID, models.LocationRoad)
	if err != nil {
		return GameOutcome{Game: game, Err: fmt.Errorf("road stats: %w", err)}
	}

	prediction, err := r.strategy.Predict(home, road, league)
	if err != nil {
		return GameOutcome{Game: game, Err: fmt.Errorf("prediction: %w", err)}
	}

	result := buildPredictionResult(game, prediction, r.strategy.Scale(),
		r.teamName(game.HomeTeamID, game.HomeTeamName), r.teamName(game.RoadTeamID, game.RoadTeamName))
	return GameOutcome{Game: game, Result: &result}
}

// buildPredictionResult picks the predicted winner; home only when strictly more likely
func buildPredictionResult(game models.GameRecord, p fourfactors.Prediction, scale float64, homeName, roadName string) models.PredictionResult {
	result := models.PredictionResult{
		GameID:    game.GameID,
		GameDate:  game.Date,
		Scale:     scale,
		HomeScore: p.HomeScore,
		RoadScore: p.RoadScore,
	}

	predictedHome := p.HomeWinPct > p.RoadWinPct
	if predictedHome {
		result.PredictedWinner, result.PredictedWinnerPct = homeName, RoundPct(p.HomeWinPct)
		result.PredictedLoser, result.PredictedLoserPct = roadName, RoundPct(p.RoadWinPct)
	} else {
		result.PredictedWinner, result.PredictedWinnerPct = roadName, RoundPct(p.RoadWinPct)
		result.PredictedLoser, result.PredictedLoserPct = homeName, RoundPct(p.HomeWinPct)
	}

	if game.HomeWon() {
		result.ActualWinner, result.ActualLoser = homeName, roadName
	} else {
		result.ActualWinner, result.ActualLoser = roadName, homeName
	}
	result.Correct = predictedHome == game.HomeWon()

	return result
}

// teamName prefers the game log name, then the directory, then the id
func (r *Runner) teamName(id int64, logName string) string {
	if logName != "" {
		return logName
	}
	if r.directory != nil {
		if team, ok := r.directory.ByID(id); ok {
			return team.DisplayName()
		}
	}
	return fmt.Sprintf("Team %d", id)
}

func (r *Runner) printf(format string, args ...interface{}) {
	if r.progress != nil {
		fmt.Fprintf(r.progress, format, args...)
	}
}
