// Package analytics computes descriptive statistics over batch scoring runs.
package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary holds descriptive statistics for one set of district scores.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes a Summary over raw scores. An empty input yields a
// zero-valued Summary rather than an error so callers can render it directly.
func Summarize(scores []float64) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	data := stats.Float64Data(scores)

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	return Summary{
		Count:  len(scores),
		Mean:   round1(mean),
		Median: round1(median),
		StdDev: round1(stdDev),
		Min:    round1(min),
		Max:    round1(max),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
