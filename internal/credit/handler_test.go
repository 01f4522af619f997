package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/climate"
	"agrorisk-copilot/loan-portal-backend/internal/risk"
)

// strictFetcher mimics the live climate service: it errors on an
// out-of-calendar month instead of returning a sentinel.
type strictFetcher struct{}

func (strictFetcher) Fetch(_ context.Context, _ catalog.LocationProfile, month int) (climate.Snapshot, error) {
	if month < 1 || month > 12 {
		return climate.Snapshot{}, fmt.Errorf("month out of range: %d", month)
	}
	return climate.Snapshot{
		Temperature:   26,
		Precipitation: 40,
		SoilMoisture:  0.32,
		NDVI:          0.55,
	}, nil
}

func newLoanRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := catalog.New()
	svc := risk.NewService(c, strictFetcher{}, risk.NewBaselineModel(), zerolog.Nop())
	handler := NewHandler(svc, NewEngine(zerolog.Nop()), nil, zerolog.Nop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func submitBody(t *testing.T, month int) []byte {
	t.Helper()
	payload := map[string]any{
		"region":   "Tashkent Region",
		"district": "Chirchiq",
		"crop":     "cotton",
		"month":    month,
	}
	app := healthyApplication()
	raw, err := json.Marshal(app)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	payload["month"] = month
	return mustMarshal(t, payload)
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestSubmitDecidesApplication(t *testing.T) {
	router := newLoanRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/loan/submit", bytes.NewReader(submitBody(t, 6)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Assessment)
	require.NotNil(t, resp.Decision)
	assert.Equal(t, resp.Assessment.Assessment.ID, resp.Decision.AssessmentID)
	assert.Contains(t, []Decision{DecisionApproved, DecisionManualReview, DecisionRejected}, resp.Decision.Decision)
	assert.Empty(t, resp.ReportURL, "no repository wired, so no report to link")
}

func TestSubmitRejectsOutOfRangeMonth(t *testing.T) {
	router := newLoanRouter(t)

	for _, month := range []int{13, -5} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/loan/submit", bytes.NewReader(submitBody(t, month)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "month %d must be a client error, got %s", month, w.Body.String())
		assert.Contains(t, w.Body.String(), "month", "month %d", month)
	}
}

func TestSubmitRejectsInvalidApplication(t *testing.T) {
	router := newLoanRouter(t)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(submitBody(t, 6), &payload))
	payload["loan_amount"] = 0

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/loan/submit", bytes.NewReader(mustMarshal(t, payload)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "loan amount")
}

func TestSubmitUnknownCrop(t *testing.T) {
	router := newLoanRouter(t)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(submitBody(t, 6), &payload))
	payload["crop"] = "dragonfruit"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/loan/submit", bytes.NewReader(mustMarshal(t, payload)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
