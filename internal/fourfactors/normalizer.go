// Package fourfactors converts Four Factors profiles into win probabilities.
package fourfactors

import "github.com/yourusername/four-factors/internal/models"

// Canonical factor weights
const (
	WeightEFG  = 0.40
	WeightTOV  = 0.25
	WeightOREB = 0.20
	WeightFTA  = 0.15
)

// Differentials holds the context-adjusted gap for each factor
type Differentials struct {
	EFG  float64
	TOV  float64
	OREB float64
	FTA  float64
}

// Normalize computes team's factor differentials against opponent, each net of
// the league baseline and of the opponent's allowed value.
//
// Turnovers are inverted: the opponent's forced turnover rate takes the
// offensive slot and the team's own turnover rate the allowed slot.
func Normalize(team, opponent models.FourFactors, league models.LeagueAverages) Differentials {
	return Differentials{
		EFG:  (team.EFGPct - league.EFGPct) - (opponent.OppEFGPct - league.EFGPct),
		TOV:  (opponent.OppTOVPct - league.TOVPct) - (team.TOVPct - league.TOVPct),
		OREB: (team.OREBPct - league.OREBPct) - (opponent.OppOREBPct - league.OREBPct),
		FTA:  (team.FTARate - league.FTARate) - (opponent.OppFTARate - league.FTARate),
	}
}

// Weighted returns the weighted skill differential
func (d Differentials) Weighted() float64 {
	return d.EFG*WeightEFG + d.TOV*WeightTOV + d.OREB*WeightOREB + d.FTA*WeightFTA
}

// Matchup holds both sides' weighted differentials for one game
type Matchup struct {
	Home Differentials
	Road Differentials
}

// NewMatchup normalizes both sides of a game
func NewMatchup(home, road models.FourFactors, league models.LeagueAverages) Matchup {
	return Matchup{
		Home: Normalize(home, road, league),
		Road: Normalize(road, home, league),
	}
}

// NetDifferential is the home side's weighted edge over the road side
func (m Matchup) NetDifferential() float64 {
	return m.Home.Weighted() - m.Road.Weighted()
}
