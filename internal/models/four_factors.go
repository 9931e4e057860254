package models

// FourFactors is a team's Four Factors snapshot for one location split.
// Every field is a fraction in [0,1].
type FourFactors struct {
	EFGPct     float64 `json:"efg_pct" validate:"gte=0,lte=1"`
	TOVPct     float64 `json:"tov_pct" validate:"gte=0,lte=1"`
	OREBPct    float64 `json:"oreb_pct" validate:"gte=0,lte=1"`
	FTARate    float64 `json:"fta_rate" validate:"gte=0,lte=1"`
	OppEFGPct  float64 `json:"opp_efg_pct" validate:"gte=0,lte=1"`
	OppTOVPct  float64 `json:"opp_tov_pct" validate:"gte=0,lte=1"`
	OppOREBPct float64 `json:"opp_oreb_pct" validate:"gte=0,lte=1"`
	OppFTARate float64 `json:"opp_fta_rate" validate:"gte=0,lte=1"`
}

// LeagueAverages holds the league baseline for the offensive factors.
// Points is only present when the provider was asked for per-game scoring.
type LeagueAverages struct {
	EFGPct  float64  `json:"efg_pct"`
	TOVPct  float64  `json:"tov_pct"`
	OREBPct float64  `json:"oreb_pct"`
	FTARate float64  `json:"fta_rate"`
	Points  *float64 `json:"points,omitempty"`
}

// HasPoints reports whether average points scored is available
func (l LeagueAverages) HasPoints() bool {
	return l.Points != nil
}
