package credit

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/reports"
	"agrorisk-copilot/loan-portal-backend/internal/risk"
	"agrorisk-copilot/loan-portal-backend/internal/storage"
)

// SubmitRequest is the JSON body of POST /loan/submit. It carries the field
// location, the planned crop and the applicant's financial statement in one
// request; the risk assessment runs as part of submission.
type SubmitRequest struct {
	Region   string `json:"region" binding:"required"`
	District string `json:"district" binding:"required"`
	Crop     string `json:"crop" binding:"required"`
	Month    int    `json:"month"`

	LoanApplication
}

// SubmitResponse bundles the assessment and the decision for the portal UI.
type SubmitResponse struct {
	Assessment *risk.Result    `json:"assessment"`
	Decision   *CreditDecision `json:"decision"`
	ReportURL  string          `json:"report_url"`
}

type Handler struct {
	riskService *risk.Service
	engine      *Engine
	repo        *storage.Repository
	pdf         *reports.DecisionPDF
	logger      zerolog.Logger
}

func NewHandler(riskService *risk.Service, engine *Engine, repo *storage.Repository, logger zerolog.Logger) *Handler {
	return &Handler{
		riskService: riskService,
		engine:      engine,
		repo:        repo,
		pdf:         reports.NewDecisionPDF(),
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	loan := rg.Group("/loan")
	{
		loan.POST("/submit", h.Submit)
		loan.GET("/:id/report", h.Report)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate the financial statement before spending a climate fetch.
	if err := req.LoanApplication.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.riskService.AssessRisk(c.Request.Context(), req.Region, req.District, req.Crop, req.Month)
	if err != nil {
		h.writeError(c, err)
		return
	}

	decision, err := h.engine.Decide(result.Assessment.ID, result.Assessment.Score, req.LoanApplication)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reportURL := ""
	if h.repo != nil {
		if err := h.persist(c, req, result, decision); err != nil {
			h.logger.Error().Err(err).
				Str("decision_id", decision.ID.String()).
				Msg("failed to persist loan case")
		} else {
			reportURL = "/api/loan/" + decision.ID.String() + "/report"
		}
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Assessment: result,
		Decision:   decision,
		ReportURL:  reportURL,
	})
}

func (h *Handler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid decision id"})
		return
	}

	lc, err := h.repo.GetLoanCase(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "decision not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="loan_decision_`+id.String()+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	if err := h.pdf.Render(c.Writer, lc); err != nil {
		h.logger.Error().Err(err).Str("decision_id", id.String()).Msg("failed to render decision report")
	}
}

func (h *Handler) persist(c *gin.Context, req SubmitRequest, result *risk.Result, decision *CreditDecision) error {
	ctx := c.Request.Context()

	farmer, err := h.repo.UpsertFarmer(ctx, req.FarmerName, req.PassportID, req.Phone)
	if err != nil {
		return err
	}

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

	if err := h.repo.CreateAssessment(ctx, &storage.AssessmentRecord{
		ID:              result.Assessment.ID,
		FarmerID:        &farmer.ID,
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
	}); err != nil {
		return err
	}

	appRec := &storage.ApplicationRecord{
		ID:               uuid.New(),
		FarmerID:         farmer.ID,
		AssessmentID:     result.Assessment.ID,
		LoanAmount:       req.LoanAmount,
		LoanTermMonths:   req.LoanTermMonths,
		LandAreaHa:       req.LandAreaHa,
		LandOwnership:    string(req.LandOwnership),
		YearsFarming:     req.YearsFarming,
		AnnualRevenue:    req.AnnualRevenue,
		NetProfit:        req.NetProfit,
		TotalAssets:      req.TotalAssets,
		TotalDebt:        req.TotalDebt,
		CollateralValue:  req.CollateralValue,
		PreviousDefaults: req.PreviousDefaults,
		CreatedAt:        time.Now().UTC(),
	}
	if err := h.repo.CreateApplication(ctx, appRec); err != nil {
		return err
	}

	ratios, err := json.Marshal(decision.Ratios)
	if err != nil {
		return err
	}

	return h.repo.CreateDecision(ctx, &storage.DecisionRecord{
		ID:             decision.ID,
		ApplicationID:  appRec.ID,
		AssessmentID:   decision.AssessmentID,
		AgroScore:      decision.AgroScore,
		FinancialScore: decision.FinancialScore,
		FinalScore:     decision.FinalScore,
		Decision:       string(decision.Decision),
		Ratios:         ratios,
		CreatedAt:      decision.CreatedAt,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrRegionNotFound),
		errors.Is(err, catalog.ErrDistrictNotFound),
		errors.Is(err, catalog.ErrCropNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, risk.ErrInvalidMonth):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, risk.ErrModelUpstream), errors.Is(err, risk.ErrNonFiniteComputation):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
