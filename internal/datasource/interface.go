package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/four-factors/internal/models"
)

// StatsProvider defines the interface for fetching team statistics from an external provider
type StatsProvider interface {
	// TeamFourFactors retrieves a team's Four Factors for one location split
	TeamFourFactors(ctx context.Context, teamID int64, location models.Location) (models.FourFactors, error)

	// LeagueAverages retrieves the league baseline for the configured season
	LeagueAverages(ctx context.Context) (models.LeagueAverages, error)

	// SeasonGameLog retrieves every team-game row of the configured season
	SeasonGameLog(ctx context.Context) ([]models.GameLogRow, error)

	// Name returns the name of the provider
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error to errors.Is and errors.As
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err is a DataSourceError with the given code
func IsCode(err error, code string) bool {
	var dsErr DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Code == code
	}
	return false
}

// IsTransient reports whether err is a provider failure that may clear up on
// a later attempt: rate limiting, network trouble or a server-side error
func IsTransient(err error) bool {
	var dsErr DataSourceError
	if !errors.As(err, &dsErr) {
		return false
	}
	switch dsErr.Code {
	case ErrCodeRateLimitExceeded, ErrCodeNetworkError, ErrCodeServerError:
		return true
	}
	return false
}
