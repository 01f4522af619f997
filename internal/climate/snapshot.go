package climate

import (
	"math"
	"time"
)

// Snapshot holds the climate inputs for one prediction request. Each field
// carries either a current/forecast value or a historical-average fallback;
// the per-field fallback flags record which source was used so downstream
// confidence labeling can account for it.
type Snapshot struct {
	Temperature   float64 `json:"temperature"`    // mean air temperature, °C
	Precipitation float64 `json:"precipitation"`  // recent + forecast precipitation, mm
	NDVI          float64 `json:"ndvi"`           // vegetation index, ~0-1
	SoilMoisture  float64 `json:"soil_moisture"`  // fraction, 0-1

	TemperatureFallback   bool `json:"temperature_fallback"`
	PrecipitationFallback bool `json:"precipitation_fallback"`
	NDVIFallback          bool `json:"ndvi_fallback"`
	SoilMoistureFallback  bool `json:"soil_moisture_fallback"`

	FetchedAt time.Time `json:"fetched_at"`
}

// FallbackCount returns how many fields carry a historical fallback value.
func (s Snapshot) FallbackCount() int {
	n := 0
	for _, f := range []bool{s.TemperatureFallback, s.PrecipitationFallback, s.NDVIFallback, s.SoilMoistureFallback} {
		if f {
			n++
		}
	}
	return n
}

// AllFallback reports whether every field came from the historical cache.
func (s Snapshot) AllFallback() bool {
	return s.FallbackCount() == 4
}

// EstimateSoilMoisture derives a soil moisture fraction from precipitation,
// temperature and vegetation cover. 500 mm precipitation is treated as
// optimal; hotter surfaces dry out faster, denser vegetation retains more.
func EstimateSoilMoisture(precipMM, tempC, ndvi float64) float64 {
	precipFactor := math.Min(precipMM/500, 1.0)
	tempPenalty := math.Max(0, (tempC-15)/40)
	base := 0.3 + precipFactor*0.4
	adjusted := base * (1 - tempPenalty*0.3) * (1 + ndvi*0.5)
	return math.Min(0.9, math.Max(0.1, adjusted))
}
