package climate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
)

// Fetcher produces a climate snapshot for a resolved location. Implementations
// must always return a usable snapshot: unavailable live data is substituted
// with historical averages and surfaced through the snapshot's fallback flags,
// never as an error.
type Fetcher interface {
	Fetch(ctx context.Context, loc catalog.LocationProfile, month int) (Snapshot, error)
}

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Service fetches live weather from Open-Meteo and blends it with cached
// satellite history. NDVI always comes from the satellite cache; temperature
// and precipitation come from the live feed when it is reachable.
type Service struct {
	client  *http.Client
	baseURL string
	cache   *Cache
	logger  zerolog.Logger
}

func NewService(cache *Cache, timeout time.Duration, logger zerolog.Logger) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultBaseURL,
		cache:   cache,
		logger:  logger,
	}
}

// WithBaseURL overrides the Open-Meteo endpoint, used by tests.
func (s *Service) WithBaseURL(u string) *Service {
	s.baseURL = u
	return s
}

type openMeteoResponse struct {
	Current struct {
		Temperature2M float64 `json:"temperature_2m"`
		Precipitation float64 `json:"precipitation"`
	} `json:"current"`
	Daily struct {
		Temperature2MMean []float64 `json:"temperature_2m_mean"`
		PrecipitationSum  []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Fetch builds a snapshot for the location. Live-feed failures degrade to the
// historical cache field by field; the call itself fails only on an invalid
// month or a cancelled context.
func (s *Service) Fetch(ctx context.Context, loc catalog.LocationProfile, month int) (Snapshot, error) {
	if month < 1 || month > 12 {
		return Snapshot{}, fmt.Errorf("month out of range: %d", month)
	}

	hist := s.cache.Lookup(loc.Region, loc.District)
	histKnown := s.cache.Has(loc.Region, loc.District)

	snap := Snapshot{
		NDVI:         hist.NDVIMean,
		NDVIFallback: !histKnown,
		FetchedAt:    time.Now().UTC(),
	}

	live, err := s.fetchLive(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		if ctx.Err() != nil {
			return Snapshot{}, ctx.Err()
		}
		s.logger.Warn().
			Err(err).
			Str("region", loc.Region).
			Str("district", loc.District).
			Msg("live weather unavailable, using historical averages")

		snap.Temperature = hist.TempMeanC
		snap.TemperatureFallback = true
		snap.Precipitation = hist.PrecipAnnualMM / 12
		snap.PrecipitationFallback = true
		snap.SoilMoisture = EstimateSoilMoisture(hist.PrecipAnnualMM, hist.TempMeanC, snap.NDVI)
		snap.SoilMoistureFallback = true
		return snap, nil
	}

	// The daily mean series is closer to the monthly averages the features
	// are calibrated against; the instantaneous reading is the backstop.
	snap.Temperature = live.Current.Temperature2M
	if len(live.Daily.Temperature2MMean) > 0 {
		snap.Temperature = mean(live.Daily.Temperature2MMean)
	}
	snap.Precipitation = sum(live.Daily.PrecipitationSum)
	snap.SoilMoisture = EstimateSoilMoisture(hist.PrecipAnnualMM, snap.Temperature, snap.NDVI)
	return snap, nil
}

func (s *Service) fetchLive(ctx context.Context, lat, lon float64) (*openMeteoResponse, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,precipitation")
	q.Set("daily", "temperature_2m_mean,precipitation_sum")
	q.Set("timezone", "Asia/Tashkent")
	q.Set("past_days", "7")
	q.Set("forecast_days", "14")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}
	return &payload, nil
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}
