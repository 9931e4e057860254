package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yourusername/four-factors/internal/fourfactors"
)

// prompter asks questions on an interactive terminal
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints the question and returns the trimmed answer; EOF yields an empty answer
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askTeam asks until a non-empty identifier is given
func (p *prompter) askTeam(side string) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		answer, err := p.ask(fmt.Sprintf("Enter %s team (name or abbreviation): ", side))
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
	return "", fmt.Errorf("no %s team given", side)
}

// askScale asks for the logistic scale; blank means the default
func (p *prompter) askScale() (float64, error) {
	answer, err := p.ask(fmt.Sprintf("Enter scale value (25-30, default %g): ", fourfactors.DefaultScale))
	if err != nil {
		return 0, err
	}
	return parseScale(answer)
}

func parseScale(answer string) (float64, error) {
	if answer == "" {
		return fourfactors.DefaultScale, nil
	}
	scale, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scale %q: %w", answer, err)
	}
	if scale <= 0 {
		return 0, fmt.Errorf("scale must be positive, got %g", scale)
	}
	return scale, nil
}

// chooseScale picks the logistic scale: an explicit --scale wins, then the
// prompt when p is set, then the configured value. score_projection has no
// scale, so an explicit value is rejected for it.
func chooseScale(strategy string, explicit *float64, configured float64, p *prompter) (float64, error) {
	if strategy == fourfactors.StrategyScoreProjection {
		if explicit != nil {
			return 0, fmt.Errorf("--scale only applies to the %s strategy, not %s", fourfactors.StrategyLogistic, strategy)
		}
		return configured, nil
	}
	if explicit != nil {
		return parseScale(strconv.FormatFloat(*explicit, 'g', -1, 64))
	}
	if p != nil {
		return p.askScale()
	}
	return configured, nil
}
