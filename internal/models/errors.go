package models

import "errors"

// Custom errors
var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrDataUnavailable     = errors.New("four factors data unavailable")
	ErrMalformedGameRecord = errors.New("malformed game record")
	ErrInvalidLocation     = errors.New("invalid location")
)
