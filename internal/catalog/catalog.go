package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRegionNotFound is returned when a region name matches no catalog entry.
	ErrRegionNotFound = errors.New("region not found")
	// ErrDistrictNotFound is returned when a district name matches no entry
	// within its region.
	ErrDistrictNotFound = errors.New("district not found")
	// ErrCropNotFound is returned when a crop name matches no catalog entry.
	ErrCropNotFound = errors.New("crop not found")
)

// Catalog holds the immutable location and crop reference tables. It is built
// once at process start and is safe for concurrent reads; nothing mutates it
// after New returns.
type Catalog struct {
	regionByName map[string]regionEntry
	cropByName   map[string]CropProfile

	regionNames []string // sorted
	cropNames   []string // sorted

	regionIndex   map[string]int
	districtIndex map[string]int
	cropIndex     map[string]int
	zoneIndex     map[ClimateZone]int
	categoryIndex map[CropCategory]int
}

// New builds the catalog from the static reference tables.
func New() *Catalog {
	c := &Catalog{
		regionByName:  make(map[string]regionEntry, len(regions)),
		cropByName:    make(map[string]CropProfile, len(crops)),
		regionIndex:   make(map[string]int),
		districtIndex: make(map[string]int),
		cropIndex:     make(map[string]int),
		zoneIndex:     make(map[ClimateZone]int, len(AllZones)),
		categoryIndex: make(map[CropCategory]int),
	}

	for _, r := range regions {
		c.regionByName[r.Name] = r
		c.regionNames = append(c.regionNames, r.Name)
	}
	sort.Strings(c.regionNames)
	for i, name := range c.regionNames {
		c.regionIndex[name] = i
	}

	// District encoding is over the sorted "region/district" key space so it
	// stays stable regardless of table declaration order.
	var districtKeys []string
	for _, r := range regions {
		for _, d := range r.Districts {
			districtKeys = append(districtKeys, r.Name+"/"+d.Name)
		}
	}
	sort.Strings(districtKeys)
	for i, k := range districtKeys {
		c.districtIndex[k] = i
	}

	for _, cr := range crops {
		c.cropByName[cr.Name] = cr
		c.cropNames = append(c.cropNames, cr.Name)
	}
	sort.Strings(c.cropNames)
	for i, name := range c.cropNames {
		c.cropIndex[name] = i
	}

	for i, z := range AllZones {
		c.zoneIndex[z] = i
	}
	categories := []CropCategory{
		CategoryFodder, CategoryFruit, CategoryGrain,
		CategoryIndustrial, CategoryLegume, CategoryVegetable,
	}
	for i, cat := range categories {
		c.categoryIndex[cat] = i
	}

	return c
}

// Regions returns all region names in sorted order.
func (c *Catalog) Regions() []string {
	out := make([]string, len(c.regionNames))
	copy(out, c.regionNames)
	return out
}

// Districts returns the districts of a region.
func (c *Catalog) Districts(region string) ([]District, error) {
	r, ok := c.regionByName[region]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, region)
	}
	out := make([]District, len(r.Districts))
	copy(out, r.Districts)
	return out, nil
}

// LookupLocation resolves a (region, district) pair to a LocationProfile.
func (c *Catalog) LookupLocation(region, district string) (LocationProfile, error) {
	r, ok := c.regionByName[region]
	if !ok {
		return LocationProfile{}, fmt.Errorf("%w: %q", ErrRegionNotFound, region)
	}
	for _, d := range r.Districts {
		if d.Name == district {
			return LocationProfile{
				Region:      r.Name,
				District:    d.Name,
				Latitude:    d.Latitude,
				Longitude:   d.Longitude,
				ClimateZone: r.Zone,
			}, nil
		}
	}
	return LocationProfile{}, fmt.Errorf("%w: %q in region %q", ErrDistrictNotFound, district, region)
}

// LookupCrop resolves a crop by name, case-insensitively.
func (c *Catalog) LookupCrop(name string) (CropProfile, error) {
	cr, ok := c.cropByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CropProfile{}, fmt.Errorf("%w: %q", ErrCropNotFound, name)
	}
	return cr, nil
}

// Crops returns all crop profiles sorted by name.
func (c *Catalog) Crops() []CropProfile {
	out := make([]CropProfile, 0, len(c.cropNames))
	for _, name := range c.cropNames {
		out = append(out, c.cropByName[name])
	}
	return out
}

// Encoding helpers. The model consumes only numbers, so categorical reference
// values are encoded as their index in the sorted catalog ordering.

func (c *Catalog) EncodeRegion(name string) float64 {
	if i, ok := c.regionIndex[name]; ok {
		return float64(i)
	}
	return -1
}

func (c *Catalog) EncodeDistrict(region, district string) float64 {
	if i, ok := c.districtIndex[region+"/"+district]; ok {
		return float64(i)
	}
	return -1
}

func (c *Catalog) EncodeCrop(name string) float64 {
	if i, ok := c.cropIndex[strings.ToLower(name)]; ok {
		return float64(i)
	}
	return -1
}

func (c *Catalog) EncodeZone(zone ClimateZone) float64 {
	if i, ok := c.zoneIndex[zone]; ok {
		return float64(i)
	}
	return -1
}

func (c *Catalog) EncodeCategory(cat CropCategory) float64 {
	if i, ok := c.categoryIndex[cat]; ok {
		return float64(i)
	}
	return -1
}
