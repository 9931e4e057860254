package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/four-factors/internal/backtest"
	"github.com/yourusername/four-factors/internal/health"
	"github.com/yourusername/four-factors/internal/metrics"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the model over a full season",
	Long:  `Reconstructs every game of the season from the game log, predicts each one and writes a results CSV plus a summary report. The scale is prompted for when --scale is not given.`,
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().Float64("scale", 0, "Logistic scale (prompted for when absent; logistic strategy only)")
	backtestCmd.Flags().StringP("output", "o", "", "Results CSV path (defaults to backtest.output_path)")
	backtestCmd.Flags().Bool("quiet", false, "Suppress per-game progress lines")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	scale, err := backtestScale(cmd)
	if err != nil {
		return err
	}

	btConfig, err := backtest.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid backtest config: %w", err)
	}
	btConfig.Scale = scale
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		btConfig.OutputPath = output
		btConfig.SummaryPath = ""
	}
	if err := btConfig.Validate(); err != nil {
		return fmt.Errorf("invalid backtest config: %w", err)
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

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.InitRegistry()
	var server *health.Server
	if cfg.Metrics.Enabled {
		server = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
			Logger:      appLogger,
			Checks: map[string]health.Checker{
				"team_directory": health.CheckerFunc(func(context.Context) error {
					if directory.Len() == 0 {
						return fmt.Errorf("team directory is empty")
					}
					return nil
				}),
			},
		})
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		server.SetReady(true)
		defer server.Shutdown()
	}

	runner, err := backtest.NewRunner(btConfig, provider, strategy, directory, appLogger)
	if err != nil {
		return err
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		runner.SetProgressWriter(cmd.OutOrStdout())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nStarting %s backtest for %s (%s)...\n\n", strategy.Name(), btConfig.Season, provider.Name())

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if server != nil {
		server.SetRunID(result.RunID)
	}

	resultsPath, summaryPath, err := backtest.SaveReports(result, btConfig)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nResults saved to %s\n", resultsPath)
	fmt.Fprintf(out, "Summary saved to %s\n\n", summaryPath)
	fmt.Fprint(out, backtest.GenerateConsoleReport(result))

	if len(result.Failures) > 0 {
		appLogger.WithField("failed_games", len(result.Failures)).Warn("Some games were skipped")
	}
	return nil
}

// backtestScale takes --scale, or prompts when the strategy uses one
func backtestScale(cmd *cobra.Command) (float64, error) {
	return chooseScale(cfg.Model.Strategy, explicitScale(cmd), cfg.Model.Scale,
		newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
}

// explicitScale returns the --scale value when the flag was given
func explicitScale(cmd *cobra.Command) *float64 {
	if !cmd.Flags().Changed("scale") {
		return nil
	}
	scale, _ := cmd.Flags().GetFloat64("scale")
	return &scale
}
