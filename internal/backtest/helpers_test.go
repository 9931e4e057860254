package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/four-factors/internal/models"
)

var testLeague = models.LeagueAverages{
	EFGPct:  0.545,
	TOVPct:  0.13,
	OREBPct: 0.25,
	FTARate: 0.20,
	Points:  floatPtr(114.5),
}

func floatPtr(v float64) *float64 { return &v }

// averageProfile is a team indistinguishable from the league baseline
func averageProfile(lg models.LeagueAverages) models.FourFactors {
	return models.FourFactors{
		EFGPct: lg.EFGPct, TOVPct: lg.TOVPct, OREBPct: lg.OREBPct, FTARate: lg.FTARate,
		OppEFGPct: lg.EFGPct, OppTOVPct: lg.TOVPct, OppOREBPct: lg.OREBPct, OppFTARate: lg.FTARate,
	}
}

// strongProfile shoots and rebounds better than the league
func strongProfile(lg models.LeagueAverages) models.FourFactors {
	p := averageProfile(lg)
	p.EFGPct += 0.04
	p.OREBPct += 0.03
	return p
}

type fakeProvider struct {
	profiles    map[CacheKey]models.FourFactors
	failures    map[CacheKey]error
	league      models.LeagueAverages
	leagueErr   error
	rows        []models.GameLogRow
	rowsErr     error
	calls       map[CacheKey]int
	leagueCalls int
}

func newFakeProvider(league models.LeagueAverages) *fakeProvider {
	return &fakeProvider{
		profiles: make(map[CacheKey]models.FourFactors),
		failures: make(map[CacheKey]error),
		league:   league,
		calls:    make(map[CacheKey]int),
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) TeamFourFactors(ctx context.Context, teamID int64, location models.Location) (models.FourFactors, error) {
	key := CacheKey{TeamID: teamID, Location: location}
	f.calls[key]++
	if err, ok := f.failures[key]; ok {
		return models.FourFactors{}, err
	}
	if p, ok := f.profiles[key]; ok {
		return p, nil
	}
	return averageProfile(f.league), nil
}

func (f *fakeProvider) LeagueAverages(ctx context.Context) (models.LeagueAverages, error) {
	f.leagueCalls++
	if f.leagueErr != nil {
		return models.LeagueAverages{}, f.leagueErr
	}
	return f.league, nil
}

func (f *fakeProvider) SeasonGameLog(ctx context.Context) ([]models.GameLogRow, error) {
	return f.rows, f.rowsErr
}

func (f *fakeProvider) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

var baseDate = time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC)

// game builds a reconstructed record; day offsets baseDate
func game(id string, day int, homeID, roadID int64, homeWon bool) models.GameRecord {
	home, road := models.GameResultLoss, models.GameResultWin
	if homeWon {
		home, road = models.GameResultWin, models.GameResultLoss
	}
	return models.GameRecord{
		GameID:       id,
		Date:         baseDate.AddDate(0, 0, day),
		HomeTeamID:   homeID,
		HomeTeamName: fmt.Sprintf("Home %d", homeID),
		RoadTeamID:   roadID,
		RoadTeamName: fmt.Sprintf("Road %d", roadID),
		HomeResult:   home,
		RoadResult:   road,
	}
}

// logRows builds the two raw rows for one game
func logRows(id string, day int, homeID, roadID int64, homeWL, roadWL string) []models.GameLogRow {
	date := baseDate.AddDate(0, 0, day)
	return []models.GameLogRow{
		{GameID: id, GameDate: date, TeamID: homeID, TeamName: fmt.Sprintf("Team %d", homeID), Matchup: "HOM vs. ROD", WL: homeWL},
		{GameID: id, GameDate: date, TeamID: roadID, TeamName: fmt.Sprintf("Team %d", roadID), Matchup: "ROD @ HOM", WL: roadWL},
	}
}
