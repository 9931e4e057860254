package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/fourfactors"
	"github.com/yourusername/four-factors/internal/models"
	"github.com/yourusername/four-factors/internal/service"
)

func TestParseScale(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "blank uses default", input: "", want: fourfactors.DefaultScale},
		{name: "integer", input: "25", want: 25},
		{name: "decimal", input: "27.5", want: 27.5},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScale(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_AskScale(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n"), &out)

	scale, err := p.askScale()
	require.NoError(t, err)
	assert.Equal(t, 28.0, scale)
	assert.Contains(t, out.String(), "Enter scale value (25-30, default 28)")
}

func TestPrompter_AskScaleWithoutNewline(t *testing.T) {
	p := newPrompter(strings.NewReader("26"), &bytes.Buffer{})

	scale, err := p.askScale()
	require.NoError(t, err)
	assert.Equal(t, 26.0, scale)
}

func TestChooseScale(t *testing.T) {
	explicit := func(v float64) *float64 { return &v }

	scale, err := chooseScale(fourfactors.StrategyLogistic, explicit(25), 28, nil)
	require.NoError(t, err)
	assert.Equal(t, 25.0, scale)

	_, err = chooseScale(fourfactors.StrategyLogistic, explicit(0), 28, nil)
	assert.Error(t, err)

	scale, err = chooseScale(fourfactors.StrategyLogistic, nil, 27, nil)
	require.NoError(t, err)
	assert.Equal(t, 27.0, scale)

	scale, err = chooseScale(fourfactors.StrategyLogistic, nil, 27, newPrompter(strings.NewReader("30\n"), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, 30.0, scale)
}

func TestChooseScaleRejectsExplicitScaleForScoreProjection(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("30\n"), &out)

	_, err := chooseScale(fourfactors.StrategyScoreProjection, func() *float64 { v := 25.0; return &v }(), 28, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only applies to the logistic strategy")

	scale, err := chooseScale(fourfactors.StrategyScoreProjection, nil, 28, p)
	require.NoError(t, err)
	assert.Equal(t, 28.0, scale)
	assert.Empty(t, out.String(), "score_projection never prompts for a scale")
}

func TestPrompter_AskTeam(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n  LAL  \n"), &out)

	team, err := p.askTeam("home")
	require.NoError(t, err)
	assert.Equal(t, "LAL", team)
	assert.Equal(t, 2, strings.Count(out.String(), "Enter home team"))
}

func TestPrompter_AskTeamGivesUp(t *testing.T) {
	p := newPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.askTeam("road")
	assert.EqualError(t, err, "no road team given")
}

func TestPrintPrediction(t *testing.T) {
	home, road := 112.4, 108.1
	prediction := &service.MatchupPrediction{
		Home:       models.Team{FullName: "Los Angeles Lakers", Abbreviation: "LAL", ID: 1610612747},
		Road:       models.Team{FullName: "Boston Celtics", Abbreviation: "BOS", ID: 1610612738},
		HomeWinPct: 61.31,
		RoadWinPct: 38.69,
		HomeScore:  &home,
		RoadScore:  &road,
	}

	var out bytes.Buffer
	printPrediction(&out, prediction)

	text := out.String()
	assert.Contains(t, text, "Projected score: LAL 112.4 - BOS 108.1")
	assert.Contains(t, text, "LAL win probability: 61.3%")
	assert.Contains(t, text, "BOS win probability: 38.7%")
	assert.Contains(t, text, "Favorite: "+prediction.Home.DisplayName())
}
