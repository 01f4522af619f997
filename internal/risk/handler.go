package risk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agrorisk-copilot/loan-portal-backend/internal/analytics"
	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/reports"
	"agrorisk-copilot/loan-portal-backend/internal/storage"
)

// PredictRequest is the JSON body of POST /predict.
type PredictRequest struct {
	Region   string `json:"region" binding:"required"`
	District string `json:"district" binding:"required"`
	Crop     string `json:"crop" binding:"required"`
	Month    int    `json:"month"`
}

type Handler struct {
	service  *Service
	catalog  *catalog.Catalog
	repo     *storage.Repository
	workbook *reports.BatchWorkbook
	logger   zerolog.Logger
}

func NewHandler(service *Service, cat *catalog.Catalog, repo *storage.Repository, logger zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		catalog:  cat,
		repo:     repo,
		workbook: reports.NewBatchWorkbook(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/regions", h.ListRegions)
	rg.GET("/districts/:region", h.ListDistricts)
	rg.GET("/crops", h.ListCrops)
	rg.POST("/predict", h.Predict)
	rg.GET("/batch-predict", h.BatchPredict)
}

func (h *Handler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": h.catalog.Regions()})
}

func (h *Handler) ListDistricts(c *gin.Context) {
	region := c.Param("region")
	districts, err := h.catalog.Districts(region)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": region, "districts": districts})
}

func (h *Handler) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crops": h.catalog.Crops()})
}

func (h *Handler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Month < 0 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	result, err := h.service.AssessRisk(c.Request.Context(), req.Region, req.District, req.Crop, req.Month)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.repo != nil {
		if err := h.persist(c, result); err != nil {
			h.logger.Error().Err(err).Str("assessment_id", result.Assessment.ID.String()).
				Msg("failed to persist assessment")
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) BatchPredict(c *gin.Context) {
	region := c.Query("region")
	crop := c.Query("crop")
	if region == "" || crop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region and crop query parameters are required"})
		return
	}
	month := 0
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		month = parsed
	}

	districts, err := h.catalog.Districts(region)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	scores := make([]DistrictScore, 0, len(districts))
	for _, district := range districts {
		score, err := h.service.ScoreDistrict(c.Request.Context(), region, district.Name, crop, month)
		if err != nil {
			h.writeError(c, err)
			return
		}
		scores = append(scores, score)
	}

	raw := make([]float64, len(scores))
	for i, s := range scores {
		raw[i] = s.Score
	}
	summary := analytics.Summarize(raw)

	if c.Query("format") == "xlsx" {
		filename := fmt.Sprintf("batch_%s_%s.xlsx", region, crop)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := h.workbook.Write(c.Writer, region, crop, month, scores, summary); err != nil {
			h.logger.Error().Err(err).Msg("failed to write batch workbook")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"region":    region,
		"crop":      crop,
		"month":     month,
		"districts": scores,
		"summary":   summary,
	})
}

func (h *Handler) persist(c *gin.Context, result *Result) error {
	factors, err := json.Marshal(result.Assessment.TopFactors)
	if err != nil {
		return err
	}
	recs, err := json.Marshal(result.Recommendations)
	if err != nil {
		return err
	}
	locInfo, err := json.Marshal(result.Location)
	if err != nil {
		return err
	}
	cropInfo, err := json.Marshal(result.Crop)
	if err != nil {
		return err
	}

	return h.repo.CreateAssessment(c.Request.Context(), &storage.AssessmentRecord{
		ID:              result.Assessment.ID,
		Region:          result.Assessment.Region,
		District:        result.Assessment.District,
		Crop:            result.Assessment.Crop,
		Month:           result.Assessment.Month,
		Score:           result.Assessment.Score,
		Category:        string(result.Assessment.Category),
		TrafficLight:    result.Assessment.TrafficLight,
		Confidence:      string(result.Assessment.Confidence),
		TopFactors:      factors,
		Recommendations: recs,
		LocationInfo:    locInfo,
		CropInfo:        cropInfo,
		CreatedAt:       result.Assessment.CreatedAt,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrRegionNotFound),
		errors.Is(err, catalog.ErrDistrictNotFound),
		errors.Is(err, catalog.ErrCropNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidMonth):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrModelUpstream), errors.Is(err, ErrNonFiniteComputation):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
