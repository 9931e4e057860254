// Package teams loads the team directory and resolves free-form team identifiers.
package teams

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/four-factors/internal/models"
)

// Directory is the immutable list of known teams in file order
type Directory struct {
	teams []models.Team
	byID  map[int64]models.Team
}

// LoadDirectory reads the team directory CSV at path
func LoadDirectory(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open team directory: %w", err)
	}
	defer f.Close()

	return NewDirectory(f)
}

// NewDirectory parses rows of full_name, abbreviation, id. The first row is a header.
func NewDirectory(r io.Reader) (*Directory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("team directory is empty")
		}
		return nil, fmt.Errorf("failed to read team directory header: %w", err)
	}

	dir := &Directory{byID: make(map[int64]models.Team)}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read team directory line %d: %w", line, err)
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("team directory line %d: expected 3 columns, got %d", line, len(record))
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("team directory line %d: invalid team id %q: %w", line, record[2], err)
		}
		team := models.Team{
			FullName:     strings.TrimSpace(record[0]),
			Abbreviation: strings.TrimSpace(record[1]),
			ID:           id,
		}
		if err := models.Validate(team); err != nil {
			return nil, fmt.Errorf("team directory line %d: %w", line, err)
		}
		if _, dup := dir.byID[id]; dup {
			return nil, fmt.Errorf("team directory line %d: duplicate team id %d", line, id)
		}
		dir.teams = append(dir.teams, team)
		dir.byID[id] = team
	}

	return dir, nil
}

// Resolve maps an identifier to a team. The identifier is trimmed and
// lower-cased and matched in priority order: exact abbreviation, exact full
// name, then substring of the full name. Within each pass rows are scanned
// in file order and the first hit wins, so an ambiguous substring such as
// "los angeles" returns whichever team is listed first.
func (d *Directory) Resolve(identifier string) (models.Team, error) {
	query := strings.ToLower(strings.TrimSpace(identifier))
	if query == "" {
		return models.Team{}, fmt.Errorf("%w: empty identifier", models.ErrTeamNotFound)
	}

	passes := []func(team models.Team) bool{
		func(team models.Team) bool { return query == strings.ToLower(team.Abbreviation) },
		func(team models.Team) bool { return query == strings.ToLower(team.FullName) },
		func(team models.Team) bool { return strings.Contains(strings.ToLower(team.FullName), query) },
	}
	for _, matches := range passes {
		for _, team := range d.teams {
			if matches(team) {
				return team, nil
			}
		}
	}

	return models.Team{}, fmt.Errorf("%w: %q", models.ErrTeamNotFound, identifier)
}

// ByID returns the team with the given numeric id
func (d *Directory) ByID(id int64) (models.Team, bool) {
	team, ok := d.byID[id]
	return team, ok
}

// Teams returns a copy of all directory entries in file order
func (d *Directory) Teams() []models.Team {
	out := make([]models.Team, len(d.teams))
	copy(out, d.teams)
	return out
}

// Len returns the number of teams in the directory
func (d *Directory) Len() int {
	return len(d.teams)
}
