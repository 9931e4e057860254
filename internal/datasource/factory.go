package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/four-factors/internal/config"
)

// Factory creates StatsProvider implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.StatsProviderConfig
}

// NewFactory creates a new stats provider factory
func NewFactory(cfg *config.StatsProviderConfig, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewStatsProvider creates the provider selected by stats_provider.source
func (f *Factory) NewStatsProvider() (StatsProvider, error) {
	if f.config == nil {
		return nil, fmt.Errorf("stats provider configuration is required")
	}

	season := SeasonParams{
		Season:     f.config.Season,
		SeasonType: f.config.SeasonType,
		LeagueID:   f.config.LeagueID,
	}

	switch f.config.Source {
	case SourceNBAStats, "":
		httpClient := NewRateLimitedHTTPClient(HTTPClientConfigFromConfig(f.config), f.logger)
		return NewNBAStatsClient(httpClient, f.config.BaseURL, f.config.APIKey, season, f.logger), nil

	case SourceSnapshot:
		if f.config.SnapshotDir == "" {
			return nil, fmt.Errorf("snapshot source requires snapshot_dir")
		}
		return NewSnapshotClient(f.config.SnapshotDir, season, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown stats provider source: %s", f.config.Source)
	}
}
