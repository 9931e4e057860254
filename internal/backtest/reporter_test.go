package backtest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/models"
)

func sampleRun() *RunResult {
	results := []models.PredictionResult{
		{GameID: "g1", PredictedWinner: "Boston Celtics", PredictedWinnerPct: 72.41, PredictedLoser: "Atlanta Hawks", PredictedLoserPct: 27.59,
			ActualWinner: "Boston Celtics", ActualLoser: "Atlanta Hawks", Scale: 28, Correct: true},
		{GameID: "g2", PredictedWinner: "New York Knicks", PredictedWinnerPct: 51.21, PredictedLoser: "Brooklyn Nets", PredictedLoserPct: 48.79,
			ActualWinner: "Brooklyn Nets", ActualLoser: "New York Knicks", Scale: 28, Correct: false},
	}
	return &RunResult{
		RunID:    "run-1",
		Season:   "2024-25",
		Strategy: "logistic",
		Scale:    28,
		Results:  results,
		Summary:  Summarize(results),
	}
}

func TestWriteResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "prediction_results.csv")
	require.NoError(t, WriteResultsCSV(sampleRun().Results, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, resultsHeader, records[0])
	assert.Equal(t, []string{"Boston Celtics", "72.41", "Atlanta Hawks", "27.59", "Boston Celtics", "Atlanta Hawks", "28", "True"}, records[1])
	assert.Equal(t, "False", records[2][7])
}

func TestWriteResultsCSVWithProjection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	results := []models.PredictionResult{{
		PredictedWinner: "Home", PredictedWinnerPct: 55.1, PredictedLoser: "Road", PredictedLoserPct: 44.9,
		ActualWinner: "Home", ActualLoser: "Road", Scale: 100, Correct: true,
		HomeScore: floatPtr(115.25), RoadScore: floatPtr(113.75),
	}}
	require.NoError(t, WriteResultsCSV(results, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0], len(resultsHeader)+2)
	assert.Equal(t, "115.3", records[1][8])
	assert.Equal(t, "113.8", records[1][9])
}

func TestGenerateSummaryText(t *testing.T) {
	text := GenerateSummaryText(sampleRun())

	assert.Contains(t, text, "NBA PREDICTION MODEL PERFORMANCE SUMMARY")
	assert.Contains(t, text, "Season: 2024-25\n")
	assert.Contains(t, text, "Scale Parameter: 28\n")
	assert.Contains(t, text, "Total Games Analyzed: 2\n")
	assert.Contains(t, text, "Correct Predictions: 1\n")
	assert.Contains(t, text, "Accuracy: 50.00%\n")
	assert.Contains(t, text, "Average Predicted Winner Confidence: 61.81%\n")
	assert.Contains(t, text, "High Confidence (>70%) Predictions: 1\n")
	assert.Contains(t, text, "High Confidence Accuracy: 100.00%\n")
	assert.Contains(t, text, "Close Game (<55%) Predictions: 1\n")
	assert.Contains(t, text, "Close Game Accuracy: 0.00%\n")
}

func TestGenerateSummaryTextOmitsEmptyBands(t *testing.T) {
	run := sampleRun()
	run.Results = run.Results[:1]
	run.Results[0].PredictedWinnerPct = 60
	run.Summary = Summarize(run.Results)

	text := GenerateSummaryText(run)
	assert.NotContains(t, text, "High Confidence")
	assert.NotContains(t, text, "Close Game")

	run.Results = nil
	run.Summary = Summarize(nil)
	text = GenerateSummaryText(run)
	assert.Contains(t, text, "Accuracy: 0.00%")
	assert.NotContains(t, text, "Average Predicted Winner Confidence")
}

func TestSaveReportsDerivesSummaryPath(t *testing.T) {
	dir := t.TempDir()
	cfg := BacktestConfig{Season: "2024-25", Scale: 28, OutputPath: filepath.Join(dir, "results.csv")}

	resultsPath, summaryPath, err := SaveReports(sampleRun(), cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "results.csv"), resultsPath)
	assert.Equal(t, filepath.Join(dir, "results_summary.txt"), summaryPath)
	assert.FileExists(t, summaryPath)
}

func TestGenerateConsoleReport(t *testing.T) {
	report := GenerateConsoleReport(sampleRun())
	assert.Contains(t, report, "Run ID: run-1")
	assert.Contains(t, report, "Overall Accuracy: 50.00% (1/2)")
}
