package climate

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Record is one district's historical satellite averages, used as the
// fallback source when live weather data is unavailable.
type Record struct {
	Region         string
	District       string
	NDVIMean       float64
	TempMeanC      float64
	PrecipAnnualMM float64
}

// defaultRecord is the last-resort fallback when a district has no cached
// satellite history either.
var defaultRecord = Record{
	NDVIMean:       0.3,
	TempMeanC:      20.0,
	PrecipAnnualMM: 200.0,
}

// Cache is a concurrency-safe in-memory table of historical records keyed by
// region/district. It is replaced wholesale on refresh, never mutated in place.
type Cache struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewCache() *Cache {
	return &Cache{records: make(map[string]Record)}
}

func cacheKey(region, district string) string {
	return region + "/" + district
}

// Lookup returns the historical record for a district, falling back to the
// process-wide defaults when the district has no history.
func (c *Cache) Lookup(region, district string) Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r, ok := c.records[cacheKey(region, district)]; ok {
		return r
	}
	r := defaultRecord
	r.Region = region
	r.District = district
	return r
}

// Has reports whether the cache holds a record for the district.
func (c *Cache) Has(region, district string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.records[cacheKey(region, district)]
	return ok
}

// ReplaceAll swaps the cached table for a freshly loaded one.
func (c *Cache) ReplaceAll(records []Record) {
	table := make(map[string]Record, len(records))
	for _, r := range records {
		table[cacheKey(r.Region, r.District)] = r
	}
	c.mu.Lock()
	c.records = table
	c.mu.Unlock()
}

// Size returns the number of cached district records.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// LoadFunc produces a fresh set of historical records.
type LoadFunc func(ctx context.Context) ([]Record, error)

// CSVLoader reads historical records from a satellite export CSV with the
// columns: region, district, ndvi_mean, lst_mean_c, precipitation_annual_mm.
func CSVLoader(path string) LoadFunc {
	return func(ctx context.Context) ([]Record, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open satellite cache: %w", err)
		}
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse satellite cache: %w", err)
		}
		if len(rows) < 2 {
			return nil, fmt.Errorf("satellite cache %s has no data rows", path)
		}

		col := make(map[string]int, len(rows[0]))
		for i, name := range rows[0] {
			col[name] = i
		}
		for _, required := range []string{"region", "district", "ndvi_mean", "lst_mean_c", "precipitation_annual_mm"} {
			if _, ok := col[required]; !ok {
				return nil, fmt.Errorf("satellite cache %s missing column %q", path, required)
			}
		}

		records := make([]Record, 0, len(rows)-1)
		for _, row := range rows[1:] {
			rec := Record{
				Region:   row[col["region"]],
				District: row[col["district"]],
			}
			rec.NDVIMean = parseFloatOr(row[col["ndvi_mean"]], defaultRecord.NDVIMean)
			rec.TempMeanC = parseFloatOr(row[col["lst_mean_c"]], defaultRecord.TempMeanC)
			rec.PrecipAnnualMM = parseFloatOr(row[col["precipitation_annual_mm"]], defaultRecord.PrecipAnnualMM)
			records = append(records, rec)
		}
		return records, nil
	}
}

func parseFloatOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Refresher reloads the historical cache on a cron schedule so long-running
// processes pick up newly exported satellite data without a restart.
type Refresher struct {
	cron   *cron.Cron
	cache  *Cache
	load   LoadFunc
	logger zerolog.Logger
}

func NewRefresher(cache *Cache, load LoadFunc, logger zerolog.Logger) *Refresher {
	return &Refresher{
		cron:   cron.New(),
		cache:  cache,
		load:   load,
		logger: logger,
	}
}

// Start performs one synchronous load, then schedules periodic reloads.
// A failed reload keeps the previous table.
func (r *Refresher) Start(spec string) error {
	r.refresh()
	if _, err := r.cron.AddFunc(spec, r.refresh); err != nil {
		return fmt.Errorf("schedule cache refresh: %w", err)
	}
	r.cron.Start()
	return nil
}

// Stop halts the refresh schedule.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refresh() {
	records, err := r.load(context.Background())
	if err != nil {
		r.logger.Warn().Err(err).Msg("satellite cache refresh failed, keeping previous table")
		return
	}
	r.cache.ReplaceAll(records)
	r.logger.Info().Int("districts", len(records)).Msg("satellite cache refreshed")
}
