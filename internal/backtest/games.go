package backtest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/four-factors/internal/models"
)

// Matchup markers used by the game log
const (
	homeMarker = " vs. "
	roadMarker = " @ "
)

// ReconstructStats counts what happened to the raw game log
type ReconstructStats struct {
	Rows    int
	Games   int
	Dropped int
}

// ReconstructGames pairs the two per-team rows of every game into a
// GameRecord. Groups that do not form a valid home/road pair are dropped.
// Records are ordered by date; games on the same date keep log order.
func ReconstructGames(rows []models.GameLogRow) ([]models.GameRecord, ReconstructStats) {
	stats := ReconstructStats{Rows: len(rows)}

	groups := make(map[string][]models.GameLogRow)
	order := make([]string, 0)
	for _, row := range rows {
		if _, seen := groups[row.GameID]; !seen {
			order = append(order, row.GameID)
		}
		groups[row.GameID] = append(groups[row.GameID], row)
	}

	records := make([]models.GameRecord, 0, len(order))
	for _, gameID := range order {
		record, err := buildGameRecord(groups[gameID])
		if err != nil {
			stats.Dropped++
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	stats.Games = len(records)
	return records, stats
}

func buildGameRecord(group []models.GameLogRow) (models.GameRecord, error) {
	if len(group) != 2 {
		return models.GameRecord{}, fmt.Errorf("%w: %d rows", models.ErrMalformedGameRecord, len(group))
	}

	var home, road *models.GameLogRow
	for i := range group {
		switch {
		case strings.Contains(group[i].Matchup, homeMarker):
			home = &group[i]
		case strings.Contains(group[i].Matchup, roadMarker):
			road = &group[i]
		}
	}
	if home == nil || road == nil {
		return models.GameRecord{}, fmt.Errorf("%w: no home/road pair", models.ErrMalformedGameRecord)
	}
	if home.TeamID == road.TeamID {
		return models.GameRecord{}, fmt.Errorf("%w: team %d plays itself", models.ErrMalformedGameRecord, home.TeamID)
	}

	homeResult := models.GameResult(home.WL)
	roadResult := models.GameResult(road.WL)
	if !homeResult.IsValid() || !roadResult.IsValid() || homeResult == roadResult {
		return models.GameRecord{}, fmt.Errorf("%w: results %q/%q", models.ErrMalformedGameRecord, home.WL, road.WL)
	}

	record := models.GameRecord{
		GameID:       home.GameID,
		Date:         home.GameDate,
		HomeTeamID:   home.TeamID,
		HomeTeamName: home.TeamName,
		RoadTeamID:   road.TeamID,
		RoadTeamName: road.TeamName,
		HomeResult:   homeResult,
		RoadResult:   roadResult,
	}
	if err := models.Validate(record); err != nil {
		return models.GameRecord{}, fmt.Errorf("%w: %v", models.ErrMalformedGameRecord, err)
	}
	return record, nil
}
