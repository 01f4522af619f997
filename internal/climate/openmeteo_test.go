package climate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
)

var testLocation = catalog.LocationProfile{
	Region:      "Tashkent Region",
	District:    "Chirchiq",
	Latitude:    41.4667,
	Longitude:   69.5833,
	ClimateZone: catalog.ZoneTashkent,
}

func cachedConditions() *Cache {
	cache := NewCache()
	cache.ReplaceAll([]Record{
		{Region: "Tashkent Region", District: "Chirchiq", NDVIMean: 0.55, TempMeanC: 17.5, PrecipAnnualMM: 430},
	})
	return cache
}

func TestFetchLiveWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "41.4667", r.URL.Query().Get("latitude"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"current": {"temperature_2m": 31.5, "precipitation": 0.2},
			"daily": {"temperature_2m_mean": [27, 29], "precipitation_sum": [3.5, 1.5]}
		}`))
	}))
	defer server.Close()

	svc := NewService(cachedConditions(), time.Second, zerolog.Nop()).WithBaseURL(server.URL)

	snap, err := svc.Fetch(context.Background(), testLocation, 6)
	require.NoError(t, err)

	assert.Equal(t, 28.0, snap.Temperature, "daily mean series wins over the instantaneous reading")
	assert.Equal(t, 5.0, snap.Precipitation)
	assert.Equal(t, 0.55, snap.NDVI)
	assert.False(t, snap.TemperatureFallback)
	assert.False(t, snap.PrecipitationFallback)
	assert.False(t, snap.SoilMoistureFallback)
	assert.False(t, snap.NDVIFallback)
	assert.Equal(t, 0, snap.FallbackCount())
}

func TestFetchWithoutDailySeriesUsesCurrentReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current": {"temperature_2m": 31.5, "precipitation": 0.2}}`))
	}))
	defer server.Close()

	svc := NewService(cachedConditions(), time.Second, zerolog.Nop()).WithBaseURL(server.URL)

	snap, err := svc.Fetch(context.Background(), testLocation, 6)
	require.NoError(t, err)
	assert.Equal(t, 31.5, snap.Temperature)
	assert.False(t, snap.TemperatureFallback)
}

func TestFetchFallsBackWhenLiveFeedFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewService(cachedConditions(), time.Second, zerolog.Nop()).WithBaseURL(server.URL)

	snap, err := svc.Fetch(context.Background(), testLocation, 6)
	require.NoError(t, err, "live failure must degrade, not error")

	assert.Equal(t, 17.5, snap.Temperature)
	assert.True(t, snap.TemperatureFallback)
	assert.True(t, snap.PrecipitationFallback)
	assert.True(t, snap.SoilMoistureFallback)
	assert.False(t, snap.NDVIFallback, "NDVI came from the cache, which has the district")
	assert.Equal(t, 3, snap.FallbackCount())
}

func TestFetchUnknownDistrictMarksNDVIFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewService(NewCache(), time.Second, zerolog.Nop()).WithBaseURL(server.URL)

	snap, err := svc.Fetch(context.Background(), testLocation, 6)
	require.NoError(t, err)
	assert.True(t, snap.NDVIFallback)
	assert.True(t, snap.AllFallback())
	assert.Equal(t, 4, snap.FallbackCount())
}

func TestFetchInvalidMonth(t *testing.T) {
	svc := NewService(NewCache(), time.Second, zerolog.Nop())

	for _, month := range []int{0, 13, -1} {
		_, err := svc.Fetch(context.Background(), testLocation, month)
		assert.Error(t, err, "month %d", month)
	}
}

func TestFetchCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := NewService(NewCache(), time.Second, zerolog.Nop()).WithBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Fetch(ctx, testLocation, 6)
	assert.ErrorIs(t, err, context.Canceled)
}
