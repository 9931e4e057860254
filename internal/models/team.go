package models

import "strings"

// Team represents an entry of the team directory
type Team struct {
	FullName     string `json:"full_name" validate:"required"`
	Abbreviation string `json:"abbreviation" validate:"required"`
	ID           int64  `json:"id" validate:"required,gt=0"`
}

// DisplayName returns the title-cased full name
func (t Team) DisplayName() string {
	words := strings.Fields(strings.ToLower(t.FullName))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Location identifies the venue split of a team's statistics
type Location string

// Venue splits as reported by the stats provider
const (
	LocationHome Location = "Home"
	LocationRoad Location = "Road"
)

// IsValid checks if the location is a known split
func (l Location) IsValid() bool {
	return l == LocationHome || l == LocationRoad
}
