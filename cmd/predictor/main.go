// Package main provides the entry point for the Four Factors predictor CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/four-factors/internal/config"
	"github.com/yourusername/four-factors/internal/datasource"
	"github.com/yourusername/four-factors/internal/fourfactors"
	"github.com/yourusername/four-factors/internal/logger"
	"github.com/yourusername/four-factors/internal/teams"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLogger  *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().String("strategy", "", "Win probability strategy (logistic, score_projection)")
	rootCmd.PersistentFlags().String("season", "", "Season to query, e.g. 2024-25")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(backtestCmd)
}

var rootCmd = &cobra.Command{
	Use:     "predictor",
	Short:   "Four Factors NBA game predictor",
	Long:    `Estimates win probabilities for NBA matchups from Dean Oliver's Four Factors and backtests the model over a season.`,
	Version: Version + " (" + GitCommit + ")",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// loadConfig reads the config file, applies flag overrides and the optional
// AWS secrets overlay, then validates
func loadConfig(cmd *cobra.Command) error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		loaded.Model.Strategy = v
	}
	if v, _ := cmd.Flags().GetString("season"); v != "" {
		loaded.StatsProvider.Season = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		loaded.App.LogLevel = v
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), loaded, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = loaded
	return nil
}

func buildDirectory() (*teams.Directory, error) {
	directory, err := teams.LoadDirectory(cfg.Teams.DirectoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load team directory: %w", err)
	}
	appLogger.WithField("teams", directory.Len()).Debug("Team directory loaded")
	return directory, nil
}

func buildProvider() (datasource.StatsProvider, error) {
	provider, err := datasource.NewFactory(&cfg.StatsProvider, appLogger).NewStatsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create stats provider: %w", err)
	}
	return provider, nil
}

func buildStrategy(scale float64) (fourfactors.Strategy, error) {
	return fourfactors.NewStrategy(cfg.Model.Strategy, scale, cfg.Model.PythagoreanExponent)
}
