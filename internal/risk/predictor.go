package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"agrorisk-copilot/loan-portal-backend/internal/climate"
)

// RiskCategory is the three-way risk bucket derived from the score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// TrafficLight is the display label for a risk category.
func (c RiskCategory) TrafficLight() string {
	switch c {
	case RiskLow:
		return "green"
	case RiskMedium:
		return "yellow"
	default:
		return "red"
	}
}

// Confidence labels how much of the climate input was live versus historical.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Assessment is the categorized, explained result of one prediction.
// Immutable after creation.
type Assessment struct {
	ID           uuid.UUID    `json:"id"`
	Region       string       `json:"region"`
	District     string       `json:"district"`
	Crop         string       `json:"crop"`
	Month        int          `json:"month"`
	Score        float64      `json:"risk_score"`
	Category     RiskCategory `json:"risk_category"`
	TrafficLight string       `json:"traffic_light"`
	Confidence   Confidence   `json:"confidence"`
	TopFactors   []Factor     `json:"top_factors"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ClampScore bounds a raw model output to [0,100]. Out-of-range values signal
// upstream drift and are clamped rather than rescaled so the drift stays
// observable in logs.
func ClampScore(raw float64) float64 {
	return math.Round(math.Min(100, math.Max(0, raw))*10) / 10
}

// Categorize maps a clamped score to its risk bucket. Boundaries are
// inclusive-low: exactly 70 is low risk, exactly 40 is medium.
func Categorize(score float64) RiskCategory {
	switch {
	case score >= 70:
		return RiskLow
	case score >= 40:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ConfidenceFor derives the confidence label purely from the snapshot's
// fallback flags, independent of the score.
func ConfidenceFor(snap climate.Snapshot) Confidence {
	switch {
	case snap.FallbackCount() == 0:
		return ConfidenceHigh
	case snap.AllFallback():
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

// Interpret post-processes a raw model score into the bounded, categorized,
// confidence-labeled triple. A non-numeric raw score is an upstream model
// defect, surfaced before clamping.
func Interpret(raw float64, snap climate.Snapshot) (float64, RiskCategory, Confidence, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, "", "", fmt.Errorf("%w: raw score is %v", ErrModelUpstream, raw)
	}
	score := ClampScore(raw)
	return score, Categorize(score), ConfidenceFor(snap), nil
}
