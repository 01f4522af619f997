package risk

import (
	"errors"
	"fmt"
	"math"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/climate"
)

var (
	// ErrInvalidMonth is returned for a month outside [1,12].
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	// ErrNonFiniteComputation indicates a derived feature or score computed to
	// NaN or Inf after fallback handling. It marks a defect, not bad input.
	ErrNonFiniteComputation = errors.New("non-finite computation result")
	// ErrModelUpstream indicates the external scoring model failed or returned
	// a value outside its numeric domain.
	ErrModelUpstream = errors.New("upstream model error")
)

// FeatureNames is the fixed model input schema, in order. Every assembled
// vector contains exactly these keys.
var FeatureNames = []string{
	"latitude",
	"longitude",
	"month",
	"temperature",
	"precipitation",
	"ndvi",
	"soil_moisture",
	"region_suitable",
	"season_suitable",
	"temp_match",
	"water_match",
	"moisture_match",
	"ndvi_score",
	"frost_risk",
	"drought_risk",
	"crop_temp_min",
	"crop_temp_max",
	"crop_water_need",
	"crop_moisture_min",
	"crop_ndvi_min",
	"crop_drought_sens",
	"crop_frost_sens",
	"crop_growing_days",
	"region_encoded",
	"district_encoded",
	"climate_zone_encoded",
	"crop_encoded",
	"crop_category_encoded",
}

// FeatureVector is an assembled model input: a value for every name in
// FeatureNames, all finite.
type FeatureVector map[string]float64

// Validate checks the vector against the fixed schema and rejects any
// non-finite entry.
func (v FeatureVector) Validate() error {
	if len(v) != len(FeatureNames) {
		return fmt.Errorf("%w: vector has %d features, schema has %d", ErrNonFiniteComputation, len(v), len(FeatureNames))
	}
	for _, name := range FeatureNames {
		val, ok := v[name]
		if !ok {
			return fmt.Errorf("%w: missing feature %q", ErrNonFiniteComputation, name)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: feature %q = %v", ErrNonFiniteComputation, name, val)
		}
	}
	return nil
}

// Clone returns a copy of the vector.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// soilMoistureMMEquivalent converts a soil moisture fraction into a
// precipitation-equivalent water reserve for the water-match ratio.
const soilMoistureMMEquivalent = 400.0

// Assembler derives the fixed feature vector from resolved reference data and
// a climate snapshot. It is stateless and safe for concurrent use.
type Assembler struct {
	catalog *catalog.Catalog
}

func NewAssembler(c *catalog.Catalog) *Assembler {
	return &Assembler{catalog: c}
}

// Assemble builds the feature vector for one (location, crop, climate, month)
// input. Fallback-sourced climate values assemble exactly like live ones; the
// snapshot's fallback flags are consumed later for confidence labeling.
func (a *Assembler) Assemble(loc catalog.LocationProfile, crop catalog.CropProfile, snap climate.Snapshot, month int) (FeatureVector, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}

	regionSuitable := boolFeature(crop.SuitableIn(loc.ClimateZone))
	seasonSuitable := boolFeature(crop.InSeason(month))

	vec := FeatureVector{
		"latitude":      loc.Latitude,
		"longitude":     loc.Longitude,
		"month":         float64(month),
		"temperature":   snap.Temperature,
		"precipitation": snap.Precipitation,
		"ndvi":          snap.NDVI,
		"soil_moisture": snap.SoilMoisture,

		"region_suitable": regionSuitable,
		"season_suitable": seasonSuitable,

		"temp_match":     tempMatch(crop, snap.Temperature),
		"water_match":    waterMatch(crop, snap.Precipitation, snap.SoilMoisture),
		"moisture_match": moistureMatch(crop, snap.SoilMoisture),
		"ndvi_score":     ndviScore(crop, snap.NDVI),

		"frost_risk":   frostIndicator(crop, snap.Temperature),
		"drought_risk": droughtIndicator(crop, snap.Temperature, snap.Precipitation),

		"crop_temp_min":     crop.OptimalTempMin,
		"crop_temp_max":     crop.OptimalTempMax,
		"crop_water_need":   crop.WaterNeedMM,
		"crop_moisture_min": crop.SoilMoistureMin,
		"crop_ndvi_min":     crop.NDVIHealthyMin,
		"crop_drought_sens": crop.DroughtCoefficient(),
		"crop_frost_sens":   crop.FrostCoefficient(),
		"crop_growing_days": float64(crop.GrowingDays),

		"region_encoded":        a.catalog.EncodeRegion(loc.Region),
		"district_encoded":      a.catalog.EncodeDistrict(loc.Region, loc.District),
		"climate_zone_encoded":  a.catalog.EncodeZone(loc.ClimateZone),
		"crop_encoded":          a.catalog.EncodeCrop(crop.Name),
		"crop_category_encoded": a.catalog.EncodeCategory(crop.Category),
	}

	if err := vec.Validate(); err != nil {
		return nil, err
	}
	return vec, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// tempMatch scores how close the temperature sits to the crop's ideal range
// midpoint, penalizing over- and under-shoot symmetrically.
func tempMatch(crop catalog.CropProfile, temp float64) float64 {
	mid := (crop.OptimalTempMin + crop.OptimalTempMax) / 2
	span := math.Max(1, crop.OptimalTempMax-crop.OptimalTempMin)
	return clamp(1-math.Abs(temp-mid)/(span/2+5), 0, 1)
}

// waterMatch is the ratio of available water (precipitation plus a soil
// moisture reserve expressed in mm) to the crop's seasonal need, saturating
// at 1: surplus water does not improve the score further.
func waterMatch(crop catalog.CropProfile, precipMM, soilMoisture float64) float64 {
	available := precipMM + soilMoisture*soilMoistureMMEquivalent
	need := math.Max(1, crop.WaterNeedMM)
	return math.Min(available/need, 1)
}

// moistureMatch scores soil moisture against the crop's minimum and optimal
// levels: full credit at or above optimal, half credit scaling below minimum.
func moistureMatch(crop catalog.CropProfile, moisture float64) float64 {
	if moisture >= crop.SoilMoistureOptimal {
		return 1
	}
	if moisture < crop.SoilMoistureMin {
		if crop.SoilMoistureMin <= 0 {
			return 0
		}
		return math.Max(0, moisture/crop.SoilMoistureMin*0.5)
	}
	span := crop.SoilMoistureOptimal - crop.SoilMoistureMin
	if span <= 0 {
		return 1
	}
	return 0.5 + 0.5*(moisture-crop.SoilMoistureMin)/span
}

func ndviScore(crop catalog.CropProfile, ndvi float64) float64 {
	return clamp(ndvi/math.Max(0.1, crop.NDVIHealthyMin), 0, 2)
}

// frostIndicator is the crop's frost sensitivity coefficient when the
// temperature sits dangerously below its optimal minimum, zero otherwise.
func frostIndicator(crop catalog.CropProfile, temp float64) float64 {
	if temp < crop.OptimalTempMin-5 {
		return crop.FrostCoefficient()
	}
	return 0
}

// droughtIndicator is the crop's drought sensitivity coefficient under
// combined water stress (precipitation well below need) and heat stress
// (temperature above the optimal maximum), zero otherwise.
func droughtIndicator(crop catalog.CropProfile, temp, precipMM float64) float64 {
	waterStress := precipMM < crop.WaterNeedMM*0.6
	heatStress := temp > crop.OptimalTempMax
	if waterStress && heatStress {
		return crop.DroughtCoefficient()
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
