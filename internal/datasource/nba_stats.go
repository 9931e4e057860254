package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/four-factors/internal/metrics"
	"github.com/yourusername/four-factors/internal/models"
)

// Provider source names
const (
	SourceNBAStats = "nba_stats"
	SourceSnapshot = "snapshot"
)

// Endpoints used by the client
const (
	EndpointTeamDashboard   = "teamdashboardbygeneralsplits"
	EndpointLeagueDashTeams = "leaguedashteamstats"
	EndpointLeagueGameFind  = "leaguegamefinder"
)

// Measure types accepted by the dashboard endpoints
const (
	MeasureFourFactors = "Four Factors"
	MeasureBase        = "Base"
)

// NBA franchise id range; the stats tables also carry G League and exhibition teams.
const (
	firstFranchiseID int64 = 1610612737
	lastFranchiseID  int64 = 1610612766
)

// IsFranchiseID reports whether id belongs to one of the 30 NBA franchises
func IsFranchiseID(id int64) bool {
	return id >= firstFranchiseID && id <= lastFranchiseID
}

// NBAStatsClient implements StatsProvider against stats.nba.com or a snapshot of it
type NBAStatsClient struct {
	fetcher    fetcher
	source     string
	season     string
	seasonType string
	leagueID   string
	logger     *logrus.Entry
}

// SeasonParams selects the season every request is scoped to
type SeasonParams struct {
	Season     string
	SeasonType string
	LeagueID   string
}

// NewNBAStatsClient creates a client for the live stats API
func NewNBAStatsClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, season SeasonParams, logger *logrus.Logger) *NBAStatsClient {
	return newNBAStatsClient(&httpFetcher{client: httpClient, baseURL: baseURL, apiKey: apiKey}, SourceNBAStats, season, logger)
}

// NewSnapshotClient creates a client that reads saved responses from dir
func NewSnapshotClient(dir string, season SeasonParams, logger *logrus.Logger) *NBAStatsClient {
	return newNBAStatsClient(&snapshotFetcher{dir: dir}, SourceSnapshot, season, logger)
}

func newNBAStatsClient(f fetcher, source string, season SeasonParams, logger *logrus.Logger) *NBAStatsClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	if season.LeagueID == "" {
		season.LeagueID = "00"
	}
	if season.SeasonType == "" {
		season.SeasonType = "Regular Season"
	}
	return &NBAStatsClient{
		fetcher:    f,
		source:     source,
		season:     season.Season,
		seasonType: season.SeasonType,
		leagueID:   season.LeagueID,
		logger: logger.WithFields(logrus.Fields{
			"component": "stats_provider",
			"source":    source,
			"season":    season.Season,
		}),
	}
}

// Name returns the name of the provider
func (c *NBAStatsClient) Name() string {
	return c.source
}

// TeamFourFactors retrieves a team's Four Factors for the Home or Road split
func (c *NBAStatsClient) TeamFourFactors(ctx context.Context, teamID int64, location models.Location) (models.FourFactors, error) {
	if !location.IsValid() {
		return models.FourFactors{}, fmt.Errorf("%w: %q", models.ErrInvalidLocation, location)
	}

	params := c.dashboardParams(MeasureFourFactors)
	params.Set("TeamID", strconv.FormatInt(teamID, 10))

	resp, err := c.do(ctx, EndpointTeamDashboard, params)
	if err != nil {
		return models.FourFactors{}, err
	}

	table, err := resp.table("LocationTeamDashboard", 1)
	if err != nil {
		return models.FourFactors{}, fmt.Errorf("team %d: %w", teamID, models.ErrDataUnavailable)
	}

	for _, row := range table.rows() {
		split, _ := row.stringValue("TEAM_GAME_LOCATION")
		if split != string(location) {
			continue
		}
		ff, err := fourFactorsFromRow(row)
		if err != nil {
			return models.FourFactors{}, fmt.Errorf("team %d %s: %w", teamID, location, err)
		}
		return ff, nil
	}

	return models.FourFactors{}, fmt.Errorf("team %d has no %s split: %w", teamID, location, models.ErrDataUnavailable)
}

// LeagueAverages averages the Four Factors of the 30 franchises. Points per
// game come from the Base table; if that request fails Points is left unset.
func (c *NBAStatsClient) LeagueAverages(ctx context.Context) (models.LeagueAverages, error) {
	resp, err := c.do(ctx, EndpointLeagueDashTeams, c.leagueDashParams(MeasureFourFactors))
	if err != nil {
		return models.LeagueAverages{}, err
	}

	table, err := resp.table("LeagueDashTeamStats", 0)
	if err != nil {
		return models.LeagueAverages{}, fmt.Errorf("league four factors: %w", models.ErrDataUnavailable)
	}

	var sum models.LeagueAverages
	teams := 0
	for _, row := range table.rows() {
		id, ok := row.intValue("TEAM_ID")
		if !ok || !IsFranchiseID(id) {
			continue
		}
		efg, ok1 := row.floatValue(colEFGPct)
		tov, ok2 := row.floatValue(colTOVPct)
		oreb, ok3 := row.floatValue(colOREBPct)
		fta, ok4 := row.floatValue(colFTARate)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			c.logger.WithField("team_id", id).Warn("Skipping team with incomplete four factors")
			continue
		}
		sum.EFGPct += efg
		sum.TOVPct += tov
		sum.OREBPct += oreb
		sum.FTARate += fta
		teams++
	}
	if teams == 0 {
		return models.LeagueAverages{}, fmt.Errorf("no franchise rows in league table: %w", models.ErrDataUnavailable)
	}

	n := float64(teams)
	avg := models.LeagueAverages{
		EFGPct:  sum.EFGPct / n,
		TOVPct:  sum.TOVPct / n,
		OREBPct: sum.OREBPct / n,
		FTARate: sum.FTARate / n,
	}

	points, err := c.leaguePoints(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("League points unavailable, score projection disabled")
	} else {
		avg.Points = &points
	}

	c.logger.WithFields(logrus.Fields{
		"teams":    teams,
		"efg_pct":  avg.EFGPct,
		"tov_pct":  avg.TOVPct,
		"oreb_pct": avg.OREBPct,
		"fta_rate": avg.FTARate,
	}).Debug("League averages computed")

	return avg, nil
}

func (c *NBAStatsClient) leaguePoints(ctx context.Context) (float64, error) {
	resp, err := c.do(ctx, EndpointLeagueDashTeams, c.leagueDashParams(MeasureBase))
	if err != nil {
		return 0, err
	}
	table, err := resp.table("LeagueDashTeamStats", 0)
	if err != nil {
		return 0, err
	}

	var total float64
	teams := 0
	for _, row := range table.rows() {
		id, ok := row.intValue("TEAM_ID")
		if !ok || !IsFranchiseID(id) {
			continue
		}
		pts, ok := row.floatValue("PTS")
		if !ok {
			continue
		}
		total += pts
		teams++
	}
	if teams == 0 {
		return 0, fmt.Errorf("no PTS column for franchise rows: %w", models.ErrDataUnavailable)
	}
	return total / float64(teams), nil
}

// SeasonGameLog retrieves the team game log for the season. Rows that cannot
// be parsed are dropped.
func (c *NBAStatsClient) SeasonGameLog(ctx context.Context) ([]models.GameLogRow, error) {
	params := url.Values{}
	params.Set("PlayerOrTeam", "T")
	params.Set("LeagueID", c.leagueID)
	params.Set("Season", c.season)
	params.Set("SeasonType", c.seasonType)

	resp, err := c.do(ctx, EndpointLeagueGameFind, params)
	if err != nil {
		return nil, err
	}

	table, err := resp.table("LeagueGameFinderResults", 0)
	if err != nil {
		return nil, NewDataSourceError(c.source, ErrCodeInvalidData, "game finder returned no results", err)
	}

	rows := make([]models.GameLogRow, 0, len(table.RowSet))
	dropped := 0
	for _, row := range table.rows() {
		logRow, err := gameLogRowFromRow(row)
		if err != nil {
			dropped++
			c.logger.WithError(err).Debug("Dropping unparseable game log row")
			continue
		}
		rows = append(rows, logRow)
	}

	c.logger.WithFields(logrus.Fields{
		"rows":    len(rows),
		"dropped": dropped,
	}).Info("Season game log loaded")

	return rows, nil
}

// do fetches an endpoint and records provider metrics
func (c *NBAStatsClient) do(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error) {
	start := time.Now()
	resp, err := c.fetcher.fetch(ctx, endpoint, params)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordProviderRequest(endpoint, status, time.Since(start).Seconds())

	if err != nil {
		c.logger.WithError(err).WithField("endpoint", endpoint).Debug("Provider request failed")
		return nil, err
	}
	return resp, nil
}

func (c *NBAStatsClient) dashboardParams(measure string) url.Values {
	params := url.Values{}
	params.Set("DateFrom", "")
	params.Set("DateTo", "")
	params.Set("GameSegment", "")
	params.Set("LastNGames", "0")
	params.Set("LeagueID", c.leagueID)
	params.Set("Location", "")
	params.Set("MeasureType", measure)
	params.Set("Month", "0")
	params.Set("OpponentTeamID", "0")
	params.Set("Outcome", "")
	params.Set("PORound", "0")
	params.Set("PaceAdjust", "N")
	params.Set("PerMode", "PerGame")
	params.Set("Period", "0")
	params.Set("PlusMinus", "N")
	params.Set("Rank", "N")
	params.Set("Season", c.season)
	params.Set("SeasonSegment", "")
	params.Set("SeasonType", c.seasonType)
	params.Set("ShotClockRange", "")
	params.Set("VsConference", "")
	params.Set("VsDivision", "")
	return params
}

func (c *NBAStatsClient) leagueDashParams(measure string) url.Values {
	params := c.dashboardParams(measure)
	params.Set("Conference", "")
	params.Set("Division", "")
	params.Set("GameScope", "")
	params.Set("PlayerExperience", "")
	params.Set("PlayerPosition", "")
	params.Set("StarterBench", "")
	params.Set("TeamID", "0")
	params.Set("TwoWay", "0")
	return params
}
