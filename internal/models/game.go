package models

import "time"

// GameResult is a team's result in a completed game
type GameResult string

// Game results as reported in the season game log
const (
	GameResultWin  GameResult = "W"
	GameResultLoss GameResult = "L"
)

// IsValid checks if the result is a win or a loss
func (r GameResult) IsValid() bool {
	return r == GameResultWin || r == GameResultLoss
}

// GameLogRow is one row of the season game log. Every completed game
// appears twice, once per participating team.
type GameLogRow struct {
	GameID           string    `json:"game_id"`
	GameDate         time.Time `json:"game_date"`
	TeamID           int64     `json:"team_id"`
	TeamName         string    `json:"team_name"`
	TeamAbbreviation string    `json:"team_abbreviation"`
	Matchup          string    `json:"matchup"`
	WL               string    `json:"wl"`
}

// GameRecord is a single reconstructed game with home and road sides
type GameRecord struct {
	GameID       string     `json:"game_id" validate:"required"`
	Date         time.Time  `json:"date" validate:"required"`
	HomeTeamID   int64      `json:"home_team_id" validate:"required,nefield=RoadTeamID"`
	HomeTeamName string     `json:"home_team_name"`
	RoadTeamID   int64      `json:"road_team_id" validate:"required"`
	RoadTeamName string     `json:"road_team_name"`
	HomeResult   GameResult `json:"home_result" validate:"required,oneof=W L"`
	RoadResult   GameResult `json:"road_result" validate:"required,oneof=W L"`
}

// HomeWon reports whether the home team won the game
func (g GameRecord) HomeWon() bool {
	return g.HomeResult == GameResultWin
}
