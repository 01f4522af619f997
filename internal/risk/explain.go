package risk

import (
	"math"
	"sort"
	"strings"
)

// Factor is one ranked explanation entry. ContributionPercent is signed and
// expressed as a share of the total absolute contribution mass, so factors
// are comparable across predictions regardless of the model's internal scale.
type Factor struct {
	Feature             string  `json:"feature"`
	Label               string  `json:"label"`
	ContributionPercent float64 `json:"contribution_percent"`
	Direction           string  `json:"direction"`
}

const (
	DirectionIncreases = "increases"
	DirectionDecreases = "decreases"
)

// TopFactorCount is the number of ranked explanation entries returned with an
// assessment.
const TopFactorCount = 5

// featureLabels maps known feature keys to display names. Keys outside the
// table fall through to humanize, which never fails.
var featureLabels = map[string]string{
	"temperature":       "Current temperature",
	"precipitation":     "Precipitation",
	"ndvi":              "Vegetation index",
	"soil_moisture":     "Soil moisture",
	"region_suitable":   "Region suitability",
	"season_suitable":   "Season suitability",
	"temp_match":        "Temperature match",
	"water_match":       "Water availability",
	"moisture_match":    "Soil moisture match",
	"ndvi_score":        "Vegetation health",
	"frost_risk":        "Frost risk",
	"drought_risk":      "Drought risk",
	"crop_drought_sens": "Crop drought sensitivity",
	"crop_frost_sens":   "Crop frost sensitivity",
	"crop_water_need":   "Crop water requirement",
}

// FeatureLabel returns the display name for a feature key.
func FeatureLabel(key string) string {
	if label, ok := featureLabels[key]; ok {
		return label
	}
	return humanize(key)
}

// humanize turns an unknown feature key into a readable label: separators
// become spaces and each word is capitalized.
func humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return key
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RankFactors selects the topN features by absolute contribution, ties broken
// by feature name for determinism. Contributions are normalized to percent of
// the total absolute mass across all features; a zero-mass input yields
// all-zero percentages rather than an error.
func RankFactors(contributions map[string]float64, topN int) []Factor {
	if topN <= 0 || len(contributions) == 0 {
		return nil
	}

	var totalMass float64
	names := make([]string, 0, len(contributions))
	for name, c := range contributions {
		names = append(names, name)
		totalMass += math.Abs(c)
	}

	sort.Slice(names, func(i, j int) bool {
		ai, aj := math.Abs(contributions[names[i]]), math.Abs(contributions[names[j]])
		if ai != aj {
			return ai > aj
		}
		return names[i] < names[j]
	})

	if topN > len(names) {
		topN = len(names)
	}

	factors := make([]Factor, 0, topN)
	for _, name := range names[:topN] {
		c := contributions[name]
		pct := 0.0
		if totalMass > 0 {
			pct = c / totalMass * 100
		}
		direction := DirectionIncreases
		if c < 0 {
			direction = DirectionDecreases
		}
		factors = append(factors, Factor{
			Feature:             name,
			Label:               FeatureLabel(name),
			ContributionPercent: math.Round(pct*10) / 10,
			Direction:           direction,
		})
	}
	return factors
}
