package backtest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/yourusername/four-factors/internal/models"
)

// BootstrapConfig configures resampling of per-game outcomes
type BootstrapConfig struct {
	Iterations      int
	ConfidenceLevel float64
	Seed            int64
}

// BootstrapResult is a percentile confidence interval for accuracy
type BootstrapResult struct {
	Iterations      int     `json:"iterations"`
	ConfidenceLevel float64 `json:"confidence_level"`
	MeanAccuracy    float64 `json:"mean_accuracy"`
	StdErr          float64 `json:"std_err"`
	LowerPct        float64 `json:"lower_pct"`
	UpperPct        float64 `json:"upper_pct"`
}

// BootstrapAccuracy resamples the evaluated games with replacement and
// returns the spread of the resampled accuracy. A fixed seed gives the same
// interval for the same results.
func BootstrapAccuracy(ctx context.Context, results []models.PredictionResult, cfg BootstrapConfig) (BootstrapResult, error) {
	if len(results) == 0 {
		return BootstrapResult{}, fmt.Errorf("no results to resample")
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel >= 1 {
		cfg.ConfidenceLevel = 0.95
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	distribution := make([]float64, cfg.Iterations)
	n := len(results)

	for i := 0; i < cfg.Iterations; i++ {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return BootstrapResult{}, err
			}
		}
		correct := 0
		for j := 0; j < n; j++ {
			if results[rng.Intn(n)].Correct {
				correct++
			}
		}
		distribution[i] = float64(correct) / float64(n) * 100
	}

	mean, std := meanStd(distribution)
	tail := (1.0 - cfg.ConfidenceLevel) / 2.0

	return BootstrapResult{
		Iterations:      cfg.Iterations,
		ConfidenceLevel: cfg.ConfidenceLevel,
		MeanAccuracy:    mean,
		StdErr:          std,
		LowerPct:        percentile(distribution, tail),
		UpperPct:        percentile(distribution, 1.0-tail),
	}, nil
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	valuesCopy := append([]float64{}, values...)
	sort.Float64s(valuesCopy)
	idx := int(math.Floor(p * float64(len(valuesCopy)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(valuesCopy) {
		idx = len(valuesCopy) - 1
	}
	return valuesCopy[idx]
}
