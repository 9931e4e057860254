package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/models"
)

func TestReconstructGamesPairsHomeAndRoad(t *testing.T) {
	rows := logRows("001", 0, 1, 2, "W", "L")
	// road row listed first
	rows[0], rows[1] = rows[1], rows[0]

	games, stats := ReconstructGames(rows)
	require.Len(t, games, 1)
	assert.Equal(t, ReconstructStats{Rows: 2, Games: 1}, stats)

	g := games[0]
	assert.Equal(t, "001", g.GameID)
	assert.Equal(t, int64(1), g.HomeTeamID)
	assert.Equal(t, int64(2), g.RoadTeamID)
	assert.Equal(t, models.GameResultWin, g.HomeResult)
	assert.Equal(t, models.GameResultLoss, g.RoadResult)
	assert.True(t, g.HomeWon())
}

func TestReconstructGamesDropsMalformedGroups(t *testing.T) {
	var rows []models.GameLogRow
	rows = append(rows, logRows("good", 0, 1, 2, "L", "W")...)
	// single row
	rows = append(rows, logRows("single", 0, 3, 4, "W", "L")[0])
	// three rows
	triple := logRows("triple", 0, 5, 6, "W", "L")
	rows = append(rows, triple...)
	rows = append(rows, triple[0])
	// two home rows
	twoHome := logRows("twohome", 0, 7, 8, "W", "L")
	twoHome[1].Matchup = "ROD vs. HOM"
	rows = append(rows, twoHome...)
	// same team on both sides
	rows = append(rows, logRows("self", 0, 9, 9, "W", "L")...)
	// both winners
	rows = append(rows, logRows("twowins", 0, 10, 11, "W", "W")...)
	// result missing
	rows = append(rows, logRows("nores", 0, 12, 13, "", "")...)
	// no game id
	rows = append(rows, logRows("", 0, 14, 15, "W", "L")...)
	// no date
	undated := logRows("undated", 0, 16, 17, "W", "L")
	undated[0].GameDate, undated[1].GameDate = time.Time{}, time.Time{}
	rows = append(rows, undated...)

	games, stats := ReconstructGames(rows)
	require.Len(t, games, 1)
	assert.Equal(t, "good", games[0].GameID)
	assert.Equal(t, 8, stats.Dropped)
	assert.Equal(t, len(rows), stats.Rows)
}

func TestReconstructGamesOrdersByDateStable(t *testing.T) {
	var rows []models.GameLogRow
	rows = append(rows, logRows("late", 5, 1, 2, "W", "L")...)
	rows = append(rows, logRows("early-a", 1, 3, 4, "W", "L")...)
	rows = append(rows, logRows("early-b", 1, 5, 6, "L", "W")...)
	rows = append(rows, logRows("middle", 3, 7, 8, "W", "L")...)

	games, _ := ReconstructGames(rows)
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}
	assert.Equal(t, []string{"early-a", "early-b", "middle", "late"}, ids)
}

func TestReconstructGamesEmpty(t *testing.T) {
	games, stats := ReconstructGames(nil)
	assert.Empty(t, games)
	assert.Zero(t, stats.Dropped)
}
