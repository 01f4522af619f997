package catalog

// ClimateZone identifies one of the fixed climate zones used for crop
// suitability matching.
type ClimateZone string

const (
	ZoneTashkent       ClimateZone = "tashkent"
	ZoneFergana        ClimateZone = "fergana"
	ZoneBukhara        ClimateZone = "bukhara"
	ZoneKarakalpakstan ClimateZone = "karakalpakstan"
	ZoneSamarkand      ClimateZone = "samarkand"
	ZoneSouth          ClimateZone = "south"
	ZoneKhorezm        ClimateZone = "khorezm"
	ZoneSirdaryo       ClimateZone = "sirdaryo"
)

// AllZones lists every climate zone in stable order.
var AllZones = []ClimateZone{
	ZoneTashkent, ZoneFergana, ZoneBukhara, ZoneKarakalpakstan,
	ZoneSamarkand, ZoneSouth, ZoneKhorezm, ZoneSirdaryo,
}

// CropCategory groups crops with similar agronomy.
type CropCategory string

const (
	CategoryGrain      CropCategory = "grain"
	CategoryIndustrial CropCategory = "industrial"
	CategoryVegetable  CropCategory = "vegetable"
	CategoryFruit      CropCategory = "fruit"
	CategoryFodder     CropCategory = "fodder"
	CategoryLegume     CropCategory = "legume"
)

// Sensitivity is a qualitative stress-sensitivity label.
type Sensitivity string

const (
	SensitivityVeryLow  Sensitivity = "very_low"
	SensitivityLow      Sensitivity = "low"
	SensitivityMedium   Sensitivity = "medium"
	SensitivityHigh     Sensitivity = "high"
	SensitivityVeryHigh Sensitivity = "very_high"
)

var droughtSensitivityScores = map[Sensitivity]float64{
	SensitivityVeryLow:  0.1,
	SensitivityLow:      0.3,
	SensitivityMedium:   0.5,
	SensitivityHigh:     0.7,
	SensitivityVeryHigh: 0.9,
}

var frostSensitivityScores = map[Sensitivity]float64{
	SensitivityLow:    0.2,
	SensitivityMedium: 0.5,
	SensitivityHigh:   0.8,
}

// CropProfile describes the growing requirements of a single crop.
// Profiles are immutable reference data.
type CropProfile struct {
	Name                string       `json:"name"`
	NameUz              string       `json:"name_uz"`
	Category            CropCategory `json:"category"`
	OptimalTempMin      float64      `json:"optimal_temp_min"`
	OptimalTempMax      float64      `json:"optimal_temp_max"`
	CriticalTempMin     float64      `json:"critical_temp_min"`
	CriticalTempMax     float64      `json:"critical_temp_max"`
	WaterNeedMM         float64      `json:"water_need_mm"`
	GrowingDays         int          `json:"growing_days"`
	SoilMoistureMin     float64      `json:"soil_moisture_min"`
	SoilMoistureOptimal float64      `json:"soil_moisture_optimal"`
	NDVIHealthyMin      float64      `json:"ndvi_healthy_min"`
	DroughtSensitivity  Sensitivity  `json:"drought_sensitivity"`
	FrostSensitivity    Sensitivity  `json:"frost_sensitivity"`
	SuitableZones       []ClimateZone `json:"suitable_zones"`
}

// DroughtCoefficient maps the qualitative drought sensitivity to a numeric
// coefficient in [0,1]. Unknown labels resolve to 0.5.
func (c CropProfile) DroughtCoefficient() float64 {
	if v, ok := droughtSensitivityScores[c.DroughtSensitivity]; ok {
		return v
	}
	return 0.5
}

// FrostCoefficient maps the qualitative frost sensitivity to a numeric
// coefficient in [0,1]. Unknown labels resolve to 0.5.
func (c CropProfile) FrostCoefficient() float64 {
	if v, ok := frostSensitivityScores[c.FrostSensitivity]; ok {
		return v
	}
	return 0.5
}

// SuitableIn reports whether the crop is suitable for the given climate zone.
func (c CropProfile) SuitableIn(zone ClimateZone) bool {
	for _, z := range c.SuitableZones {
		if z == zone {
			return true
		}
	}
	return false
}

type seasonWindow struct {
	Start int // first month of the growing window, inclusive
	End   int // last month of the growing window, inclusive
}

// Growing windows per crop category. Windows may wrap the year end
// (winter grains are sown in autumn and harvested the next summer).
var categorySeasons = map[CropCategory]seasonWindow{
	CategoryGrain:      {Start: 3, End: 11},
	CategoryIndustrial: {Start: 4, End: 10},
	CategoryVegetable:  {Start: 3, End: 9},
	CategoryFruit:      {Start: 4, End: 10},
	CategoryFodder:     {Start: 3, End: 10},
	CategoryLegume:     {Start: 3, End: 7},
}

// InSeason reports whether the month falls inside the crop's growing window.
func (c CropProfile) InSeason(month int) bool {
	w, ok := categorySeasons[c.Category]
	if !ok {
		return false
	}
	if w.Start <= w.End {
		return month >= w.Start && month <= w.End
	}
	return month >= w.Start || month <= w.End
}

// crops holds the full crop reference table. Values derive from FAO guidance
// adapted to Uzbekistan growing conditions.
var crops = []CropProfile{
	{
		Name: "cotton", NameUz: "Paxta", Category: CategoryIndustrial,
		OptimalTempMin: 20, OptimalTempMax: 35, CriticalTempMin: 15, CriticalTempMax: 40,
		WaterNeedMM: 700, GrowingDays: 150,
		SoilMoistureMin: 0.3, SoilMoistureOptimal: 0.5, NDVIHealthyMin: 0.4,
		DroughtSensitivity: SensitivityMedium, FrostSensitivity: SensitivityHigh,
		SuitableZones: []ClimateZone{ZoneTashkent, ZoneFergana, ZoneSirdaryo, ZoneSamarkand, ZoneSouth, ZoneBukhara, ZoneKhorezm},
	},
	{
		Name: "wheat", NameUz: "Bug'doy", Category: CategoryGrain,
		OptimalTempMin: 12, OptimalTempMax: 25, CriticalTempMin: -5, CriticalTempMax: 35,
		WaterNeedMM: 450, GrowingDays: 240,
		SoilMoistureMin: 0.25, SoilMoistureOptimal: 0.4, NDVIHealthyMin: 0.35,
		DroughtSensitivity: SensitivityLow, FrostSensitivity: SensitivityLow,
		SuitableZones: AllZones,
	},
	{
		Name: "rice", NameUz: "Sholi", Category: CategoryGrain,
		OptimalTempMin: 22, OptimalTempMax: 32, CriticalTempMin: 15, CriticalTempMax: 38,
		WaterNeedMM: 1200, GrowingDays: 120,
		SoilMoistureMin: 0.6, SoilMoistureOptimal: 0.8, NDVIHealthyMin: 0.45,
		DroughtSensitivity: SensitivityVeryHigh, FrostSensitivity: SensitivityHigh,
		SuitableZones: []ClimateZone{ZoneTashkent, ZoneFergana, ZoneKhorezm, ZoneKarakalpakstan},
	},
	{
		Name: "corn", NameUz: "Makkajo'xori", Category: CategoryGrain,
		OptimalTempMin: 18, OptimalTempMax: 30, CriticalTempMin: 10, CriticalTempMax: 38,
		WaterNeedMM: 500, GrowingDays: 100,
		SoilMoistureMin: 0.35, SoilMoistureOptimal: 0.5, NDVIHealthyMin: 0.4,
		DroughtSensitivity: SensitivityMedium, FrostSensitivity: SensitivityHigh,
		SuitableZones: AllZones,
	},
	{
		Name: "tomato", NameUz: "Pomidor", Category: CategoryVegetable,
		OptimalTempMin: 18, OptimalTempMax: 27, CriticalTempMin: 10, CriticalTempMax: 35,
		WaterNeedMM: 600, GrowingDays: 90,
		SoilMoistureMin: 0.4, SoilMoistureOptimal: 0.6, NDVIHealthyMin: 0.35,
		DroughtSensitivity: SensitivityHigh, FrostSensitivity: SensitivityHigh,
		SuitableZones: []ClimateZone{ZoneTashkent, ZoneSamarkand, ZoneFergana, ZoneSouth},
	},
	{
		Name: "melon", NameUz: "Qovun", Category: CategoryFruit,
		OptimalTempMin: 24, OptimalTempMax: 35, CriticalTempMin: 15, CriticalTempMax: 42,
		WaterNeedMM: 400, GrowingDays: 85,
		SoilMoistureMin: 0.25, SoilMoistureOptimal: 0.4, NDVIHealthyMin: 0.3,
		DroughtSensitivity: SensitivityLow, FrostSensitivity: SensitivityHigh,
		SuitableZones: []ClimateZone{ZoneBukhara, ZoneSamarkand, ZoneKhorezm, ZoneSouth},
	},
	{
		Name: "watermelon", NameUz: "Tarvuz", Category: CategoryFruit,
		OptimalTempMin: 24, OptimalTempMax: 35, CriticalTempMin: 15, CriticalTempMax: 40,
		WaterNeedMM: 450, GrowingDays: 80,
		SoilMoistureMin: 0.25, SoilMoistureOptimal: 0.4, NDVIHealthyMin: 0.3,
		DroughtSensitivity: SensitivityLow, FrostSensitivity: SensitivityHigh,
		SuitableZones: AllZones,
	},
	{
		Name: "grape", NameUz: "Uzum", Category: CategoryFruit,
		OptimalTempMin: 15, OptimalTempMax: 30, CriticalTempMin: -15, CriticalTempMax: 38,
		WaterNeedMM: 500, GrowingDays: 150,
		SoilMoistureMin: 0.3, SoilMoistureOptimal: 0.45, NDVIHealthyMin: 0.35,
		DroughtSensitivity: SensitivityMedium, FrostSensitivity: SensitivityMedium,
		SuitableZones: []ClimateZone{ZoneSamarkand, ZoneBukhara, ZoneTashkent, ZoneFergana, ZoneSouth},
	},
	{
		Name: "apple", NameUz: "Olma", Category: CategoryFruit,
		OptimalTempMin: 10, OptimalTempMax: 25, CriticalTempMin: -25, CriticalTempMax: 35,
		WaterNeedMM: 600, GrowingDays: 180,
		SoilMoistureMin: 0.35, SoilMoistureOptimal: 0.5, NDVIHealthyMin: 0.4,
		DroughtSensitivity: SensitivityMedium, FrostSensitivity: SensitivityLow,
		SuitableZones: []ClimateZone{ZoneTashkent, ZoneSamarkand, ZoneFergana},
	},
	{
		Name: "potato", NameUz: "Kartoshka", Category: CategoryVegetable,
		OptimalTempMin: 15, OptimalTempMax: 22, CriticalTempMin: 5, CriticalTempMax: 30,
		WaterNeedMM: 500, GrowingDays: 100,
		SoilMoistureMin: 0.4, SoilMoistureOptimal: 0.6, NDVIHealthyMin: 0.35,
		DroughtSensitivity: SensitivityHigh, FrostSensitivity: SensitivityMedium,
		SuitableZones: []ClimateZone{ZoneTashkent, ZoneSamarkand, ZoneFergana},
	},
	{
		Name: "onion", NameUz: "Piyoz", Category: CategoryVegetable,
		OptimalTempMin: 12, OptimalTempMax: 25, CriticalTempMin: -5, CriticalTempMax: 35,
		WaterNeedMM: 350, GrowingDays: 120,
		SoilMoistureMin: 0.3, SoilMoistureOptimal: 0.5, NDVIHealthyMin: 0.3,
		DroughtSensitivity: SensitivityMedium, FrostSensitivity: SensitivityLow,
		SuitableZones: AllZones,
	},
	{
		Name: "carrot", NameUz: "Sabzi", Category: CategoryVegetable,
		OptimalTempMin: 15, OptimalTempMax: 22, CriticalTempMin: 5, CriticalTempMax: 30,
		WaterNeedMM: 400, GrowingDays: 90,
		SoilMoistureMin: 0.35, SoilMoistureOptimal: 0.55, NDVIHealthyMin: 0.3,
		DroughtSensitivity: SensitivityMedium, FrostSensitivity: SensitivityLow,
		SuitableZones: AllZones,
	},
	{
		Name: "alfalfa", NameUz: "Beda", Category: CategoryFodder,
		OptimalTempMin: 15, OptimalTempMax: 30, CriticalTempMin: -10, CriticalTempMax: 38,
		WaterNeedMM: 800, GrowingDays: 200,
		SoilMoistureMin: 0.3, SoilMoistureOptimal: 0.5, NDVIHealthyMin: 0.4,
		DroughtSensitivity: SensitivityLow, FrostSensitivity: SensitivityLow,
		SuitableZones: AllZones,
	},
	{
		Name: "chickpea", NameUz: "No'xat", Category: CategoryLegume,
		OptimalTempMin: 15, OptimalTempMax: 28, CriticalTempMin: 5, CriticalTempMax: 35,
		WaterNeedMM: 300, GrowingDays: 100,
		SoilMoistureMin: 0.2, SoilMoistureOptimal: 0.35, NDVIHealthyMin: 0.25,
		DroughtSensitivity: SensitivityVeryLow, FrostSensitivity: SensitivityMedium,
		SuitableZones: []ClimateZone{ZoneSouth, ZoneSamarkand},
	},
	{
		Name: "sunflower", NameUz: "Kungaboqar", Category: CategoryIndustrial,
		OptimalTempMin: 18, OptimalTempMax: 30, CriticalTempMin: 5, CriticalTempMax: 38,
		WaterNeedMM: 450, GrowingDays: 110,
		SoilMoistureMin: 0.25, SoilMoistureOptimal: 0.4, NDVIHealthyMin: 0.35,
		DroughtSensitivity: SensitivityLow, FrostSensitivity: SensitivityHigh,
		SuitableZones: []ClimateZone{ZoneTashkent, ZoneSamarkand, ZoneSirdaryo},
	},
}
