package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/climate"
	"agrorisk-copilot/loan-portal-backend/internal/risktypes"
)

// LocationInfo summarizes the resolved location and the climate conditions
// used for the assessment, for display and reporting.
type LocationInfo struct {
	Region      string              `json:"region"`
	District    string              `json:"district"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	ClimateZone catalog.ClimateZone `json:"climate_zone"`
	Conditions  climate.Snapshot    `json:"current_conditions"`
}

// CropInfo summarizes the assessed crop and its suitability flags.
type CropInfo struct {
	Name           string               `json:"name"`
	NameUz         string               `json:"name_uz"`
	Category       catalog.CropCategory `json:"category"`
	OptimalTempMin float64              `json:"optimal_temp_min"`
	OptimalTempMax float64              `json:"optimal_temp_max"`
	WaterNeedMM    float64              `json:"water_need_mm"`
	RegionSuitable bool                 `json:"region_suitable"`
	SeasonSuitable bool                 `json:"season_suitable"`
}

// Result is the full outcome of one risk assessment request.
type Result struct {
	Assessment      Assessment       `json:"assessment"`
	Recommendations []Recommendation `json:"recommendations"`
	Location        LocationInfo     `json:"location_info"`
	Crop            CropInfo         `json:"crop_info"`
}

// DistrictScore is the compact per-district result used by batch assessment.
// It lives in risktypes so reports can share it without importing risk.
type DistrictScore = risktypes.DistrictScore

// Service orchestrates catalog lookups, climate fetching, feature assembly,
// model scoring and recommendation ranking. All state is read-only reference
// data and the model capability, both injected at construction; the service
// is safe for concurrent use.
type Service struct {
	catalog     *catalog.Catalog
	fetcher     climate.Fetcher
	model       Model
	assembler   *Assembler
	recommender *Recommender
	logger      zerolog.Logger
}

func NewService(c *catalog.Catalog, fetcher climate.Fetcher, model Model, logger zerolog.Logger) *Service {
	assembler := NewAssembler(c)
	return &Service{
		catalog:     c,
		fetcher:     fetcher,
		model:       model,
		assembler:   assembler,
		recommender: NewRecommender(c, assembler, model),
		logger:      logger,
	}
}

// AssessRisk runs the full prediction pipeline for one (region, district,
// crop, month) request. A month of 0 means "current month".
func (s *Service) AssessRisk(ctx context.Context, region, district, cropName string, month int) (*Result, error) {
	month, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}

	loc, err := s.catalog.LookupLocation(region, district)
	if err != nil {
		return nil, err
	}
	crop, err := s.catalog.LookupCrop(cropName)
	if err != nil {
		return nil, err
	}

	snap, err := s.fetcher.Fetch(ctx, loc, month)
	if err != nil {
		return nil, fmt.Errorf("fetch climate for %s/%s: %w", region, district, err)
	}

	score, category, confidence, vec, err := s.scoreAt(loc, crop, snap, month)
	if err != nil {
		return nil, err
	}

	contributions, err := s.model.Explain(vec)
	if err != nil {
		return nil, fmt.Errorf("%w: explain: %v", ErrModelUpstream, err)
	}

	recommendations := s.recommender.Recommend(loc, month, crop.Name, snap, score)

	return &Result{
		Assessment: Assessment{
			ID:           uuid.New(),
			Region:       loc.Region,
			District:     loc.District,
			Crop:         crop.Name,
			Month:        month,
			Score:        score,
			Category:     category,
			TrafficLight: category.TrafficLight(),
			Confidence:   confidence,
			TopFactors:   RankFactors(contributions, TopFactorCount),
			CreatedAt:    time.Now().UTC(),
		},
		Recommendations: recommendations,
		Location: LocationInfo{
			Region:      loc.Region,
			District:    loc.District,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			ClimateZone: loc.ClimateZone,
			Conditions:  snap,
		},
		Crop: CropInfo{
			Name:           crop.Name,
			NameUz:         crop.NameUz,
			Category:       crop.Category,
			OptimalTempMin: crop.OptimalTempMin,
			OptimalTempMax: crop.OptimalTempMax,
			WaterNeedMM:    crop.WaterNeedMM,
			RegionSuitable: crop.SuitableIn(loc.ClimateZone),
			SeasonSuitable: crop.InSeason(month),
		},
	}, nil
}

// ScoreDistrict runs the cheap assessment path (no explanation, no
// recommendations) for one district, used by batch region scoring.
func (s *Service) ScoreDistrict(ctx context.Context, region, district, cropName string, month int) (DistrictScore, error) {
	month, err := resolveMonth(month)
	if err != nil {
		return DistrictScore{}, err
	}

	loc, err := s.catalog.LookupLocation(region, district)
	if err != nil {
		return DistrictScore{}, err
	}
	crop, err := s.catalog.LookupCrop(cropName)
	if err != nil {
		return DistrictScore{}, err
	}
	snap, err := s.fetcher.Fetch(ctx, loc, month)
	if err != nil {
		return DistrictScore{}, fmt.Errorf("fetch climate for %s/%s: %w", region, district, err)
	}

	score, category, _, _, err := s.scoreAt(loc, crop, snap, month)
	if err != nil {
		return DistrictScore{}, err
	}

	return DistrictScore{
		District:     loc.District,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		Score:        score,
		Category:     string(category),
		TrafficLight: category.TrafficLight(),
	}, nil
}

// resolveMonth defaults a zero month to the current month and rejects anything
// outside the calendar before any network fetch happens, so invalid input
// surfaces as ErrInvalidMonth rather than a wrapped fetch failure.
func resolveMonth(month int) (int, error) {
	if month == 0 {
		return int(time.Now().Month()), nil
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	return month, nil
}

func (s *Service) scoreAt(loc catalog.LocationProfile, crop catalog.CropProfile, snap climate.Snapshot, month int) (float64, RiskCategory, Confidence, FeatureVector, error) {
	vec, err := s.assembler.Assemble(loc, crop, snap, month)
	if err != nil {
		if errors.Is(err, ErrNonFiniteComputation) {
			// Invariant violations are fatal to the request and logged with
			// the full input for diagnosis.
			s.logger.Error().
				Err(err).
				Str("region", loc.Region).
				Str("district", loc.District).
				Str("crop", crop.Name).
				Interface("snapshot", snap).
				Msg("feature assembly produced a non-finite value")
		}
		return 0, "", "", nil, err
	}

	raw, err := s.model.Score(vec)
	if err != nil {
		return 0, "", "", nil, fmt.Errorf("%w: %v", ErrModelUpstream, err)
	}

	score, category, confidence, err := Interpret(raw, snap)
	if err != nil {
		s.logger.Error().
			Err(err).
			Interface("features", vec).
			Msg("model returned a non-numeric score")
		return 0, "", "", nil, err
	}
	return score, category, confidence, vec, nil
}
