package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/four-factors/internal/service"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a single game",
	Long:  `Resolves the home and road teams, fetches their location splits and prints win probabilities. Teams not given as flags are prompted for.`,
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().String("home", "", "Home team name or abbreviation")
	predictCmd.Flags().String("road", "", "Road team name or abbreviation")
	predictCmd.Flags().Float64("scale", 0, "Logistic scale (defaults to model.scale; logistic strategy only)")
}

func runPredict(cmd *cobra.Command, args []string) error {
	home, _ := cmd.Flags().GetString("home")
	road, _ := cmd.Flags().GetString("road")

	scale, err := chooseScale(cfg.Model.Strategy, explicitScale(cmd), cfg.Model.Scale, nil)
	if err != nil {
		return err
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if home == "" {
		if home, err = p.askTeam("home"); err != nil {
			return err
		}
	}
	if road == "" {
		if road, err = p.askTeam("road"); err != nil {
			return err
		}
	}

	directory, err := buildDirectory()
	if err != nil {
		return err
	}
	provider, err := buildProvider()
	if err != nil {
		return err
	}
	strategy, err := buildStrategy(scale)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	predictor := service.NewGamePredictorService(directory, provider, strategy, appLogger)
	prediction, err := predictor.PredictMatchup(ctx, home, road)
	if err != nil {
		return err
	}

	printPrediction(cmd.OutOrStdout(), prediction)
	return nil
}

func printPrediction(w io.Writer, p *service.MatchupPrediction) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s (road) @ %s (home)\n", p.Road.DisplayName(), p.Home.DisplayName())
	if p.HasProjection() {
		fmt.Fprintf(w, "Projected score: %s %.1f - %s %.1f\n", p.Home.Abbreviation, *p.HomeScore, p.Road.Abbreviation, *p.RoadScore)
	}
	fmt.Fprintf(w, "%s win probability: %.1f%%\n", p.Home.Abbreviation, p.HomeWinPct)
	fmt.Fprintf(w, "%s win probability: %.1f%%\n", p.Road.Abbreviation, p.RoadWinPct)
	fmt.Fprintf(w, "Favorite: %s\n", p.Favorite().DisplayName())
}
