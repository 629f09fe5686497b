package audio

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// popStdDev is the population standard deviation, 0 for fewer than two values
func popStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.PopStdDev(x, nil)
}

func valueRange(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x) - floats.Min(x)
}

// percentile returns the empirical p-quantile (p in [0,1])
func percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// linearTrend is the least-squares slope of x against its index.
// A single point has no slope.
func linearTrend(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	idx := make([]float64, len(x))
	for i := range idx {
		idx[i] = float64(i)
	}
	_, slope := stat.LinearRegression(idx, x, nil, false)
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}

// meanAbsDelta is the mean absolute frame-to-frame change
func meanAbsDelta(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += math.Abs(x[i] - x[i-1])
	}
	return sum / float64(len(x)-1)
}

// jitter is the mean absolute F0 change normalised by mean F0.
// It is undefined (nil) for fewer than two values or a zero mean.
func jitter(f0 []float64) *float64 {
	if len(f0) < 2 {
		return nil
	}
	m := mean(f0)
	if m == 0 {
		return nil
	}
	j := meanAbsDelta(f0) / m
	return &j
}

// countPeaks counts local maxima above frac of the series maximum
func countPeaks(x []float64, frac float64) int {
	if len(x) < 3 {
		return 0
	}
	limit := frac * floats.Max(x)
	peaks := 0
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] && x[i] > limit {
			peaks++
		}
	}
	return peaks
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
