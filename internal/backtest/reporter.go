package backtest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/four-factors/internal/models"
)

var resultsHeader = []string{
	"Winner", "Winner Winning %", "Loser", "Loser Winning %",
	"Actual Winner", "Actual Loser", "Scale", "Correct",
}

var projectionHeader = []string{"Projected Home Score", "Projected Road Score"}

const summaryRule = "============================================================"

// GenerateConsoleReport formats the run summary for terminal output
func GenerateConsoleReport(run *RunResult) string {
	var builder strings.Builder
	s := run.Summary
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", run.RunID))
	builder.WriteString(fmt.Sprintf("Strategy: %s (scale %s)\n", run.Strategy, formatNumber(run.Scale)))
	builder.WriteString(fmt.Sprintf("Games Evaluated: %d\n", s.TotalGames))
	builder.WriteString(fmt.Sprintf("Games Skipped: %d\n", len(run.Failures)))
	builder.WriteString(fmt.Sprintf("Stats Cache: %d hits, %d misses\n", run.Cache.Hits, run.Cache.Misses))
	builder.WriteString(fmt.Sprintf("Overall Accuracy: %.2f%% (%d/%d)\n", s.AccuracyPct, s.Correct, s.TotalGames))
	return builder.String()
}

// GenerateSummaryText renders the summary file contents
func GenerateSummaryText(run *RunResult) string {
	var builder strings.Builder
	s := run.Summary

	builder.WriteString(summaryRule + "\n")
	builder.WriteString("NBA PREDICTION MODEL PERFORMANCE SUMMARY\n")
	builder.WriteString(summaryRule + "\n\n")
	builder.WriteString(fmt.Sprintf("Season: %s\n", run.Season))
	builder.WriteString(fmt.Sprintf("Strategy: %s\n", run.Strategy))
	builder.WriteString(fmt.Sprintf("Scale Parameter: %s\n", formatNumber(run.Scale)))
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", run.RunID))
	builder.WriteString(fmt.Sprintf("Total Games Analyzed: %d\n", s.TotalGames))
	builder.WriteString(fmt.Sprintf("Correct Predictions: %d\n", s.Correct))
	builder.WriteString(fmt.Sprintf("Incorrect Predictions: %d\n", s.Incorrect))
	builder.WriteString(fmt.Sprintf("Accuracy: %.2f%%\n", s.AccuracyPct))
	if run.Bootstrap != nil {
		builder.WriteString(fmt.Sprintf("Accuracy %.0f%% Interval: %.2f%% - %.2f%% (%d resamples)\n",
			run.Bootstrap.ConfidenceLevel*100, run.Bootstrap.LowerPct, run.Bootstrap.UpperPct, run.Bootstrap.Iterations))
	}
	builder.WriteString("\n")

	if !s.HasResults() {
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("Average Predicted Winner Confidence: %.2f%%\n", s.AvgWinnerConfidence))

	if s.HighConfidence.Count > 0 {
		builder.WriteString(fmt.Sprintf("High Confidence (>70%%) Predictions: %d\n", s.HighConfidence.Count))
		builder.WriteString(fmt.Sprintf("High Confidence Accuracy: %.2f%%\n\n", s.HighConfidence.AccuracyPct))
	}

	if s.CloseGames.Count > 0 {
		builder.WriteString(fmt.Sprintf("Close Game (<55%%) Predictions: %d\n", s.CloseGames.Count))
		builder.WriteString(fmt.Sprintf("Close Game Accuracy: %.2f%%\n", s.CloseGames.AccuracyPct))
	}

	return builder.String()
}

// WriteSummary writes the summary text file
func WriteSummary(run *RunResult, outputPath string) error {
	if err := ensureDir(outputPath); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(GenerateSummaryText(run)), 0o644)
}

// WriteResultsCSV writes one row per evaluated game
func WriteResultsCSV(results []models.PredictionResult, outputPath string) error {
	if err := ensureDir(outputPath); err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	withProjection := false
	for _, r := range results {
		if r.HomeScore != nil && r.RoadScore != nil {
			withProjection = true
			break
		}
	}

	header := resultsHeader
	if withProjection {
		header = append(append([]string{}, resultsHeader...), projectionHeader...)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.PredictedWinner,
			formatNumber(r.PredictedWinnerPct),
			r.PredictedLoser,
			formatNumber(r.PredictedLoserPct),
			r.ActualWinner,
			r.ActualLoser,
			formatNumber(r.Scale),
			formatBool(r.Correct),
		}
		if withProjection {
			record = append(record, formatScore(r.HomeScore), formatScore(r.RoadScore))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write result for game %s: %w", r.GameID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}
	return file.Close()
}

// SaveReports writes the results CSV and the summary file, returning their paths
func SaveReports(run *RunResult, cfg BacktestConfig) (string, string, error) {
	if err := WriteResultsCSV(run.Results, cfg.OutputPath); err != nil {
		return "", "", err
	}
	summaryPath := cfg.ResolvedSummaryPath()
	if err := WriteSummary(run, summaryPath); err != nil {
		return "", "", fmt.Errorf("failed to write summary: %w", err)
	}
	return cfg.OutputPath, summaryPath, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromFloat(*v).StringFixed(1)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
