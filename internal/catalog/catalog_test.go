package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLocation(t *testing.T) {
	c := New()

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)
	assert.Equal(t, "Tashkent Region", loc.Region)
	assert.Equal(t, "Chirchiq", loc.District)
	assert.Equal(t, ZoneTashkent, loc.ClimateZone)
	assert.InDelta(t, 41.4667, loc.Latitude, 0.001)
	assert.InDelta(t, 69.5833, loc.Longitude, 0.001)
}

func TestLookupLocationUnknownRegion(t *testing.T) {
	c := New()

	_, err := c.LookupLocation("Atlantis", "Chirchiq")
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestLookupLocationUnknownDistrict(t *testing.T) {
	c := New()

	_, err := c.LookupLocation("Tashkent Region", "Nowhere")
	assert.ErrorIs(t, err, ErrDistrictNotFound)
}

func TestLookupCropCaseInsensitive(t *testing.T) {
	c := New()

	for _, name := range []string{"cotton", "Cotton", "COTTON", "  cotton  "} {
		crop, err := c.LookupCrop(name)
		require.NoError(t, err, "lookup %q", name)
		assert.Equal(t, "cotton", crop.Name)
	}

	_, err := c.LookupCrop("durian")
	assert.ErrorIs(t, err, ErrCropNotFound)
}

func TestCropsSortedAndComplete(t *testing.T) {
	c := New()

	crops := c.Crops()
	assert.Len(t, crops, 15)
	assert.True(t, sort.SliceIsSorted(crops, func(i, j int) bool {
		return crops[i].Name < crops[j].Name
	}))

	for _, crop := range crops {
		assert.NotEmpty(t, crop.NameUz, "crop %s missing local name", crop.Name)
		assert.Greater(t, crop.WaterNeedMM, 0.0, "crop %s", crop.Name)
		assert.Greater(t, crop.OptimalTempMax, crop.OptimalTempMin, "crop %s", crop.Name)
		assert.NotEmpty(t, crop.SuitableZones, "crop %s has no suitable zones", crop.Name)
	}
}

func TestRegionsAndDistricts(t *testing.T) {
	c := New()

	regions := c.Regions()
	assert.Len(t, regions, 14)
	assert.True(t, sort.StringsAreSorted(regions))

	districts, err := c.Districts("Tashkent Region")
	require.NoError(t, err)
	assert.NotEmpty(t, districts)

	_, err = c.Districts("Atlantis")
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestSeasonWindows(t *testing.T) {
	tests := []struct {
		category CropCategory
		month    int
		want     bool
	}{
		{CategoryGrain, 3, true},
		{CategoryGrain, 11, true},
		{CategoryGrain, 12, false},
		{CategoryIndustrial, 4, true},
		{CategoryIndustrial, 10, true},
		{CategoryIndustrial, 3, false},
		{CategoryIndustrial, 11, false},
		{CategoryVegetable, 9, true},
		{CategoryVegetable, 10, false},
		{CategoryLegume, 7, true},
		{CategoryLegume, 8, false},
	}

	for _, tt := range tests {
		crop := CropProfile{Category: tt.category}
		assert.Equal(t, tt.want, crop.InSeason(tt.month),
			"category %s month %d", tt.category, tt.month)
	}
}

func TestSeasonWindowWraparound(t *testing.T) {
	// A wrapped window spans the year boundary: active Oct through Jun,
	// inactive in late summer.
	crop := CropProfile{Category: "winter_test"}
	categorySeasons["winter_test"] = seasonWindow{Start: 10, End: 6}
	defer delete(categorySeasons, "winter_test")

	assert.True(t, crop.InSeason(10))
	assert.True(t, crop.InSeason(12))
	assert.True(t, crop.InSeason(1))
	assert.True(t, crop.InSeason(6))
	assert.False(t, crop.InSeason(7))
	assert.False(t, crop.InSeason(9))
}

func TestSensitivityCoefficients(t *testing.T) {
	crop := CropProfile{DroughtSensitivity: SensitivityVeryHigh, FrostSensitivity: SensitivityLow}
	assert.Equal(t, 0.9, crop.DroughtCoefficient())
	assert.Equal(t, 0.2, crop.FrostCoefficient())

	unknown := CropProfile{DroughtSensitivity: "mysterious", FrostSensitivity: "mysterious"}
	assert.Equal(t, 0.5, unknown.DroughtCoefficient())
	assert.Equal(t, 0.5, unknown.FrostCoefficient())
}

func TestEncoders(t *testing.T) {
	c := New()

	assert.GreaterOrEqual(t, c.EncodeRegion("Tashkent Region"), 0.0)
	assert.Equal(t, -1.0, c.EncodeRegion("Atlantis"))

	assert.GreaterOrEqual(t, c.EncodeCrop("cotton"), 0.0)
	assert.Equal(t, -1.0, c.EncodeCrop("durian"))

	assert.GreaterOrEqual(t, c.EncodeZone(ZoneFergana), 0.0)
	assert.GreaterOrEqual(t, c.EncodeCategory(CategoryGrain), 0.0)

	// Encodings are stable across catalog instances.
	other := New()
	assert.Equal(t, c.EncodeCrop("wheat"), other.EncodeCrop("wheat"))
	assert.Equal(t, c.EncodeDistrict("Tashkent Region", "Chirchiq"),
		other.EncodeDistrict("Tashkent Region", "Chirchiq"))
}
