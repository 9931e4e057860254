package datasource

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/four-factors/internal/models"
)

// statsResponse is the envelope returned by every stats.nba.com endpoint
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

// resultSet is one named table inside a response
type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// decodeStatsResponse decodes a response body, keeping numbers as json.Number
func decodeStatsResponse(r io.Reader) (*statsResponse, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var resp statsResponse
	if err := decoder.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// table returns the result set with the given name, falling back to the
// positional index when the provider omits or renames it.
func (r *statsResponse) table(name string, fallbackIndex int) (*resultSet, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	if fallbackIndex >= 0 && fallbackIndex < len(r.ResultSets) {
		return &r.ResultSets[fallbackIndex], nil
	}
	return nil, fmt.Errorf("result set %q not found", name)
}

// column returns the index of a header, or -1
func (s *resultSet) column(header string) int {
	for i, h := range s.Headers {
		if strings.EqualFold(h, header) {
			return i
		}
	}
	return -1
}

// tableRow is a single row addressed by header name
type tableRow struct {
	set    *resultSet
	values []interface{}
}

func (s *resultSet) rows() []tableRow {
	rows := make([]tableRow, len(s.RowSet))
	for i, values := range s.RowSet {
		rows[i] = tableRow{set: s, values: values}
	}
	return rows
}

func (r tableRow) raw(header string) (interface{}, bool) {
	idx := r.set.column(header)
	if idx < 0 || idx >= len(r.values) || r.values[idx] == nil {
		return nil, false
	}
	return r.values[idx], true
}

func (r tableRow) floatValue(header string) (float64, bool) {
	v, ok := r.raw(header)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func (r tableRow) intValue(header string) (int64, bool) {
	v, ok := r.raw(header)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func (r tableRow) stringValue(header string) (string, bool) {
	v, ok := r.raw(header)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	}
	return fmt.Sprint(v), true
}

// Four Factors column names as published by the provider
const (
	colEFGPct     = "EFG_PCT"
	colTOVPct     = "TM_TOV_PCT"
	colOREBPct    = "OREB_PCT"
	colFTARate    = "FTA_RATE"
	colOppEFGPct  = "OPP_EFG_PCT"
	colOppTOVPct  = "OPP_TOV_PCT"
	colOppOREBPct = "OPP_OREB_PCT"
	colOppFTARate = "OPP_FTA_RATE"
)

// fourFactorsFromRow builds a profile; every one of the eight columns must be present
func fourFactorsFromRow(row tableRow) (models.FourFactors, error) {
	var ff models.FourFactors
	fields := []struct {
		header string
		dst    *float64
	}{
		{colEFGPct, &ff.EFGPct},
		{colTOVPct, &ff.TOVPct},
		{colOREBPct, &ff.OREBPct},
		{colFTARate, &ff.FTARate},
		{colOppEFGPct, &ff.OppEFGPct},
		{colOppTOVPct, &ff.OppTOVPct},
		{colOppOREBPct, &ff.OppOREBPct},
		{colOppFTARate, &ff.OppFTARate},
	}
	for _, f := range fields {
		v, ok := row.floatValue(f.header)
		if !ok {
			return models.FourFactors{}, fmt.Errorf("%w: missing %s", models.ErrDataUnavailable, f.header)
		}
		*f.dst = v
	}
	if err := models.Validate(ff); err != nil {
		return models.FourFactors{}, fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}
	return ff, nil
}

// gameDateLayouts are the date formats seen in the game finder's GAME_DATE column
var gameDateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", "Jan 02, 2006"}

func parseGameDate(s string) (time.Time, error) {
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised game date %q", s)
}

// gameLogRowFromRow converts a game finder row
func gameLogRowFromRow(row tableRow) (models.GameLogRow, error) {
	gameID, ok := row.stringValue("GAME_ID")
	if !ok || gameID == "" {
		return models.GameLogRow{}, fmt.Errorf("missing GAME_ID")
	}
	dateStr, ok := row.stringValue("GAME_DATE")
	if !ok {
		return models.GameLogRow{}, fmt.Errorf("game %s: missing GAME_DATE", gameID)
	}
	date, err := parseGameDate(dateStr)
	if err != nil {
		return models.GameLogRow{}, fmt.Errorf("game %s: %w", gameID, err)
	}
	teamID, ok := row.intValue("TEAM_ID")
	if !ok {
		return models.GameLogRow{}, fmt.Errorf("game %s: missing TEAM_ID", gameID)
	}

	teamName, _ := row.stringValue("TEAM_NAME")
	abbr, _ := row.stringValue("TEAM_ABBREVIATION")
	matchup, _ := row.stringValue("MATCHUP")
	wl, _ := row.stringValue("WL")

	return models.GameLogRow{
		GameID:           gameID,
		GameDate:         date,
		TeamID:           teamID,
		TeamName:         teamName,
		TeamAbbreviation: abbr,
		Matchup:          matchup,
		WL:               wl,
	}, nil
}
