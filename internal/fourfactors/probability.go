package fourfactors

import (
	"fmt"
	"math"

	"github.com/yourusername/four-factors/internal/models"
)

// Strategy names accepted by NewStrategy
const (
	StrategyLogistic        = "logistic"
	StrategyScoreProjection = "score_projection"
)

const (
	// DefaultScale is the logistic strategy's default multiplier
	DefaultScale = 28.0
	// DefaultPythagoreanExponent is the basketball points exponent
	DefaultPythagoreanExponent = 13.91

	logisticDivisor   = 15.0
	pointsPerDiffUnit = 100.0
)

// Prediction is the model output for a home/road pairing
type Prediction struct {
	HomeWinPct float64
	RoadWinPct float64
	HomeScore  *float64
	RoadScore  *float64
}

// HasProjection reports whether projected scores are included
func (p Prediction) HasProjection() bool {
	return p.HomeScore != nil && p.RoadScore != nil
}

// Strategy converts two Four Factors profiles into win probabilities
type Strategy interface {
	Name() string
	Scale() float64
	// RequiresLeaguePoints reports whether Predict needs LeagueAverages.Points
	RequiresLeaguePoints() bool
	Predict(home, road models.FourFactors, league models.LeagueAverages) (Prediction, error)
}

// LogisticStrategy scales the weighted differential and maps it through a base-10 logistic curve
type LogisticStrategy struct {
	scale float64
}

// NewLogisticStrategy creates a logistic strategy; a non-positive scale falls back to DefaultScale
func NewLogisticStrategy(scale float64) *LogisticStrategy {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &LogisticStrategy{scale: scale}
}

// Name returns the strategy name
func (s *LogisticStrategy) Name() string { return StrategyLogistic }

// Scale returns the differential multiplier
func (s *LogisticStrategy) Scale() float64 { return s.scale }

// RequiresLeaguePoints is false; the logistic curve uses factors only
func (s *LogisticStrategy) RequiresLeaguePoints() bool { return false }

// Predict returns win percentages that sum to 100
func (s *LogisticStrategy) Predict(home, road models.FourFactors, league models.LeagueAverages) (Prediction, error) {
	matchup := NewMatchup(home, road, league)
	homePct := LogisticWinPct(matchup.Home.Weighted(), matchup.Road.Weighted(), s.scale)
	if math.IsNaN(homePct) {
		return Prediction{}, fmt.Errorf("logistic win probability is not a number")
	}
	return Prediction{HomeWinPct: homePct, RoadWinPct: 100 - homePct}, nil
}

// LogisticWinPct is side A's win percentage given both weighted differentials
func LogisticWinPct(weightedA, weightedB, scale float64) float64 {
	rawDiff := (weightedA - weightedB) * scale
	return 100 / (1 + math.Pow(10, -rawDiff/logisticDivisor))
}

// ScoreProjectionStrategy projects a final score around the league scoring
// average and converts it with a Pythagorean expectation
type ScoreProjectionStrategy struct {
	exponent float64
}

// NewScoreProjectionStrategy creates a score projection strategy; a non-positive exponent falls back to the default
func NewScoreProjectionStrategy(exponent float64) *ScoreProjectionStrategy {
	if exponent <= 0 {
		exponent = DefaultPythagoreanExponent
	}
	return &ScoreProjectionStrategy{exponent: exponent}
}

// Name returns the strategy name
func (s *ScoreProjectionStrategy) Name() string { return StrategyScoreProjection }

// Scale returns the points per unit of weighted differential
func (s *ScoreProjectionStrategy) Scale() float64 { return pointsPerDiffUnit }

// Exponent returns the Pythagorean exponent
func (s *ScoreProjectionStrategy) Exponent() float64 { return s.exponent }

// RequiresLeaguePoints is true; scores are projected around the league average
func (s *ScoreProjectionStrategy) RequiresLeaguePoints() bool { return true }

// Predict projects both scores and the home win percentage
func (s *ScoreProjectionStrategy) Predict(home, road models.FourFactors, league models.LeagueAverages) (Prediction, error) {
	if !league.HasPoints() {
		return Prediction{}, fmt.Errorf("%w: league average points required for score projection", models.ErrDataUnavailable)
	}

	pointDiff := NewMatchup(home, road, league).NetDifferential() * pointsPerDiffUnit
	homeScore := *league.Points + pointDiff/2
	roadScore := *league.Points - pointDiff/2
	if homeScore <= 0 || roadScore <= 0 {
		return Prediction{}, fmt.Errorf("projected scores must be positive, got %.2f-%.2f", homeScore, roadScore)
	}

	homePct := PythagoreanWinPct(homeScore, roadScore, s.exponent)
	return Prediction{
		HomeWinPct: homePct,
		RoadWinPct: 100 - homePct,
		HomeScore:  &homeScore,
		RoadScore:  &roadScore,
	}, nil
}

// PythagoreanWinPct is the first side's win percentage from projected points
func PythagoreanWinPct(pointsFor, pointsAgainst, exponent float64) float64 {
	forExp := math.Pow(pointsFor, exponent)
	againstExp := math.Pow(pointsAgainst, exponent)
	return forExp / (forExp + againstExp) * 100
}

// NewStrategy builds the named conversion strategy
func NewStrategy(name string, scale, exponent float64) (Strategy, error) {
	switch name {
	case StrategyLogistic, "":
		return NewLogisticStrategy(scale), nil
	case StrategyScoreProjection:
		return NewScoreProjectionStrategy(exponent), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
}
