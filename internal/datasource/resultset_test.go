package datasource

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/models"
)

func TestDecodeStatsResponseTableLookup(t *testing.T) {
	body := `{"resultSets":[
		{"name":"First","headers":["A"],"rowSet":[[1]]},
		{"name":"Second","headers":["TEAM_ID","EFG_PCT","NAME"],"rowSet":[[1610612737,0.512,"Hawks"],[1610612738,null,"Celtics"]]}
	]}`

	resp, err := decodeStatsResponse(strings.NewReader(body))
	require.NoError(t, err)

	table, err := resp.table("Second", 0)
	require.NoError(t, err)
	rows := table.rows()
	require.Len(t, rows, 2)

	id, ok := rows[0].intValue("TEAM_ID")
	assert.True(t, ok)
	assert.Equal(t, int64(1610612737), id)

	efg, ok := rows[0].floatValue("efg_pct")
	assert.True(t, ok)
	assert.Equal(t, 0.512, efg)

	_, ok = rows[1].floatValue("EFG_PCT")
	assert.False(t, ok, "null cells are missing")

	name, ok := rows[1].stringValue("NAME")
	assert.True(t, ok)
	assert.Equal(t, "Celtics", name)

	fallback, err := resp.table("Renamed", 1)
	require.NoError(t, err)
	assert.Equal(t, "Second", fallback.Name)

	_, err = resp.table("Renamed", 5)
	assert.Error(t, err)
}

func TestSnapshotFileName(t *testing.T) {
	params := url.Values{}
	assert.Equal(t, "leaguegamefinder.json", snapshotFileName("leaguegamefinder", params))

	params.Set("MeasureType", "Four Factors")
	params.Set("TeamID", "0")
	assert.Equal(t, "leaguedashteamstats_four_factors.json", snapshotFileName("leaguedashteamstats", params))

	params.Set("TeamID", "1610612747")
	assert.Equal(t, "teamdashboardbygeneralsplits_four_factors_1610612747.json", snapshotFileName("teamdashboardbygeneralsplits", params))
}

func TestParseGameDate(t *testing.T) {
	for _, s := range []string{"2025-01-15", "2025-01-15T00:00:00", "Jan 15, 2025"} {
		d, err := parseGameDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, 15, d.Day())
	}

	_, err := parseGameDate("15/01/2025")
	assert.Error(t, err)
}

func TestFourFactorsFromRowRejectsOutOfRangeValues(t *testing.T) {
	headers := `["EFG_PCT","TM_TOV_PCT","OREB_PCT","FTA_RATE","OPP_EFG_PCT","OPP_TOV_PCT","OPP_OREB_PCT","OPP_FTA_RATE"]`
	body := `{"resultSets":[{"name":"LocationTeamDashboard","headers":` + headers + `,"rowSet":[
		[0.55,0.13,0.28,0.25,0.52,0.14,0.27,0.22],
		[55.0,13.0,28.0,25.0,52.0,14.0,27.0,22.0],
		[0.55,-0.13,0.28,0.25,0.52,0.14,0.27,0.22]
	]}]}`

	resp, err := decodeStatsResponse(strings.NewReader(body))
	require.NoError(t, err)
	table, err := resp.table("LocationTeamDashboard", 0)
	require.NoError(t, err)
	rows := table.rows()
	require.Len(t, rows, 3)

	ff, err := fourFactorsFromRow(rows[0])
	require.NoError(t, err)
	assert.Equal(t, 0.55, ff.EFGPct)

	for _, row := range rows[1:] {
		_, err := fourFactorsFromRow(row)
		assert.ErrorIs(t, err, models.ErrDataUnavailable)
	}
}
