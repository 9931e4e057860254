// Package service provides single-game prediction.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/four-factors/internal/datasource"
	"github.com/yourusername/four-factors/internal/fourfactors"
	"github.com/yourusername/four-factors/internal/models"
	"github.com/yourusername/four-factors/internal/teams"
)

// TeamResolver resolves free-form team identifiers
type TeamResolver interface {
	Resolve(identifier string) (models.Team, error)
}

// MatchupPrediction is the model's view of one home/road pairing
type MatchupPrediction struct {
	Home       models.Team
	Road       models.Team
	HomeWinPct float64
	RoadWinPct float64
	HomeScore  *float64
	RoadScore  *float64
	Strategy   string
	Scale      float64
}

// HasProjection reports whether projected scores are available
func (p *MatchupPrediction) HasProjection() bool {
	return p.HomeScore != nil && p.RoadScore != nil
}

// Favorite returns the team more likely to win; the road team on an exact tie
func (p *MatchupPrediction) Favorite() models.Team {
	if p.HomeWinPct > p.RoadWinPct {
		return p.Home
	}
	return p.Road
}

// GamePredictorService predicts a single matchup
type GamePredictorService struct {
	resolver TeamResolver
	provider datasource.StatsProvider
	strategy fourfactors.Strategy
	logger   *logrus.Logger
}

// NewGamePredictorService creates a new single-game predictor
func NewGamePredictorService(resolver TeamResolver, provider datasource.StatsProvider, strategy fourfactors.Strategy, logger *logrus.Logger) *GamePredictorService {
	if logger == nil {
		logger = logrus.New()
	}
	return &GamePredictorService{
		resolver: resolver,
		provider: provider,
		strategy: strategy,
		logger:   logger,
	}
}

var _ TeamResolver = (*teams.Directory)(nil)

// PredictMatchup resolves both identifiers, fetches the home team's home
// split, the road team's road split and the league baseline, and runs the
// model. Every failure is returned to the caller.
func (s *GamePredictorService) PredictMatchup(ctx context.Context, homeIdentifier, roadIdentifier string) (*MatchupPrediction, error) {
	home, err := s.resolver.Resolve(homeIdentifier)
	if err != nil {
		return nil, fmt.Errorf("home team: %w", err)
	}
	road, err := s.resolver.Resolve(roadIdentifier)
	if err != nil {
		return nil, fmt.Errorf("road team: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"home_team": home.Abbreviation,
		"road_team": road.Abbreviation,
		"strategy":  s.strategy.Name(),
	})
	log.Debug("Predicting matchup")

	league, err := s.provider.LeagueAverages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get league averages: %w", err)
	}

	homeStats, err := s.provider.TeamFourFactors(ctx, home.ID, models.LocationHome)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s home stats: %w", home.Abbreviation, err)
	}

	roadStats, err := s.provider.TeamFourFactors(ctx, road.ID, models.LocationRoad)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s road stats: %w", road.Abbreviation, err)
	}

	prediction, err := s.strategy.Predict(homeStats, roadStats, league)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"home_win_pct": prediction.HomeWinPct,
		"road_win_pct": prediction.RoadWinPct,
	}).Info("Matchup predicted")

	return &MatchupPrediction{
		Home:       home,
		Road:       road,
		HomeWinPct: prediction.HomeWinPct,
		RoadWinPct: prediction.RoadWinPct,
		HomeScore:  prediction.HomeScore,
		RoadScore:  prediction.RoadScore,
		Strategy:   s.strategy.Name(),
		Scale:      s.strategy.Scale(),
	}, nil
}
