package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrorisk-copilot/loan-portal-backend/internal/climate"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{66.666, 66.7},
		{100, 100},
		{117.3, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.raw), "raw %v", tt.raw)
	}
}

func TestCategorizeBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskCategory
	}{
		{0, RiskHigh},
		{39.9, RiskHigh},
		{40, RiskMedium},
		{69.9, RiskMedium},
		{70, RiskLow},
		{100, RiskLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.score), "score %v", tt.score)
	}
}

func TestTrafficLight(t *testing.T) {
	assert.Equal(t, "green", RiskLow.TrafficLight())
	assert.Equal(t, "yellow", RiskMedium.TrafficLight())
	assert.Equal(t, "red", RiskHigh.TrafficLight())
}

func TestConfidenceFor(t *testing.T) {
	live := climate.Snapshot{}
	assert.Equal(t, ConfidenceHigh, ConfidenceFor(live))

	partial := climate.Snapshot{TemperatureFallback: true}
	assert.Equal(t, ConfidenceMedium, ConfidenceFor(partial))

	all := climate.Snapshot{
		TemperatureFallback:   true,
		PrecipitationFallback: true,
		SoilMoistureFallback:  true,
		NDVIFallback:          true,
	}
	assert.Equal(t, ConfidenceLow, ConfidenceFor(all))
}

func TestInterpret(t *testing.T) {
	snap := climate.Snapshot{}

	score, category, confidence, err := Interpret(85.27, snap)
	require.NoError(t, err)
	assert.Equal(t, 85.3, score)
	assert.Equal(t, RiskLow, category)
	assert.Equal(t, ConfidenceHigh, confidence)

	// Out-of-range raw scores clamp rather than fail.
	score, category, _, err = Interpret(130, snap)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, RiskLow, category)

	score, category, _, err = Interpret(-12, snap)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, RiskHigh, category)
}

func TestInterpretNonNumeric(t *testing.T) {
	snap := climate.Snapshot{}

	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, _, err := Interpret(raw, snap)
		assert.ErrorIs(t, err, ErrModelUpstream, "raw %v", raw)
	}
}
