package credit

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// healthyApplication triggers none of the penalty rules and neither bonus.
func healthyApplication() LoanApplication {
	return LoanApplication{
		FarmerName:      "Aziz Karimov",
		PassportID:      "AA1234567",
		Phone:           "+998901234567",
		YearsFarming:    10,
		LandAreaHa:      25,
		LandOwnership:   OwnershipOwned,
		LoanAmount:      100_000_000,
		LoanTermMonths:  24,
		AnnualRevenue:   400_000_000,
		NetProfit:       80_000_000, // margin 0.2
		TotalAssets:     500_000_000,
		TotalDebt:       100_000_000, // debt-to-asset 0.2
		CollateralValue: 120_000_000, // coverage 1.2
	}
}

func testEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

func TestDecideNeutralApplication(t *testing.T) {
	dec, err := testEngine().Decide(uuid.New(), 80, healthyApplication())
	require.NoError(t, err)

	assert.Equal(t, 80.0, dec.AgroScore)
	assert.Equal(t, 70.0, dec.FinancialScore, "no rule applies to a neutral application")
	// 80*0.4 + 70*0.6 = 74.
	assert.Equal(t, 74.0, dec.FinalScore)
	assert.Equal(t, DecisionApproved, dec.Decision)
}

func TestFinancialRulesInIsolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LoanApplication)
		want   float64
	}{
		{
			name:   "high leverage",
			mutate: func(a *LoanApplication) { a.TotalDebt = 400_000_000 }, // 0.8
			want:   40,
		},
		{
			name:   "elevated leverage",
			mutate: func(a *LoanApplication) { a.TotalDebt = 300_000_000 }, // 0.6
			want:   55,
		},
		{
			name:   "thin margin",
			mutate: func(a *LoanApplication) { a.NetProfit = 20_000_000 }, // 0.05
			want:   60,
		},
		{
			name:   "strong margin",
			mutate: func(a *LoanApplication) { a.NetProfit = 160_000_000 }, // 0.4
			want:   80,
		},
		{
			name:   "undercollateralized",
			mutate: func(a *LoanApplication) { a.CollateralValue = 50_000_000 }, // 0.5
			want:   50,
		},
		{
			name:   "overcollateralized",
			mutate: func(a *LoanApplication) { a.CollateralValue = 200_000_000 }, // 2.0
			want:   80,
		},
		{
			name:   "previous default",
			mutate: func(a *LoanApplication) { a.PreviousDefaults = true },
			want:   20,
		},
		{
			name:   "inexperienced",
			mutate: func(a *LoanApplication) { a.YearsFarming = 1 },
			want:   60,
		},
		{
			name:   "short lease",
			mutate: func(a *LoanApplication) { a.LandOwnership = OwnershipLeasedShort },
			want:   60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := healthyApplication()
			tt.mutate(&app)

			dec, err := testEngine().Decide(uuid.New(), 80, app)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dec.FinancialScore)
		})
	}
}

func TestLeverageBandsAreExclusive(t *testing.T) {
	// Exactly 0.7 sits in the elevated band, not the high one.
	app := healthyApplication()
	app.TotalDebt = 350_000_000 // 0.7

	dec, err := testEngine().Decide(uuid.New(), 80, app)
	require.NoError(t, err)
	assert.Equal(t, 55.0, dec.FinancialScore)
}

func TestDecideDistressedApplication(t *testing.T) {
	// Over-leveraged, unprofitable, under-collateralized and previously
	// defaulted: the rule deltas drive the financial score below zero and it
	// clamps at zero.
	app := healthyApplication()
	app.TotalDebt = 400_000_000    // 0.8 → -30
	app.NetProfit = 20_000_000     // 0.05 → -10
	app.CollateralValue = 50_000_000 // 0.5 → -20
	app.PreviousDefaults = true    // -50

	dec, err := testEngine().Decide(uuid.New(), 80, app)
	require.NoError(t, err)

	assert.Equal(t, 0.0, dec.FinancialScore)
	// 80*0.4 + 0*0.6 = 32.
	assert.Equal(t, 32.0, dec.FinalScore)
	assert.Equal(t, DecisionRejected, dec.Decision)
}

func TestDecideBestCase(t *testing.T) {
	app := healthyApplication()
	app.NetProfit = 160_000_000      // strong margin +10
	app.CollateralValue = 200_000_000 // overcollateralized +10

	dec, err := testEngine().Decide(uuid.New(), 100, app)
	require.NoError(t, err)

	assert.Equal(t, 90.0, dec.FinancialScore)
	// 100*0.4 + 90*0.6 = 94.
	assert.Equal(t, 94.0, dec.FinalScore)
	assert.Equal(t, DecisionApproved, dec.Decision)
}

func TestDecisionThresholds(t *testing.T) {
	// Financial score is fixed at 70; pick agro scores that land the blend on
	// each side of the thresholds. final = agro*0.4 + 42.
	tests := []struct {
		agro float64
		want Decision
	}{
		{70, DecisionApproved},      // 70.0
		{69.9, DecisionManualReview}, // 69.96 → 70.0? guarded below
		{20, DecisionManualReview},  // 50.0
		{19.9, DecisionRejected},    // 49.96 → rounds to 50.0? guarded below
		{0, DecisionRejected},       // 42.0
	}

	for _, tt := range tests {
		dec, err := testEngine().Decide(uuid.New(), tt.agro, healthyApplication())
		require.NoError(t, err)
		if tt.agro == 69.9 || tt.agro == 19.9 {
			// Rounding to one decimal can push a just-below blend onto the
			// threshold; assert the decision matches the rounded final score.
			switch {
			case dec.FinalScore >= 70:
				assert.Equal(t, DecisionApproved, dec.Decision)
			case dec.FinalScore >= 50:
				assert.Equal(t, DecisionManualReview, dec.Decision)
			default:
				assert.Equal(t, DecisionRejected, dec.Decision)
			}
			continue
		}
		assert.Equal(t, tt.want, dec.Decision, "agro %v final %v", tt.agro, dec.FinalScore)
	}
}

func TestComputeRatiosWorstCaseDenominators(t *testing.T) {
	app := healthyApplication()
	app.TotalAssets = 0
	app.AnnualRevenue = 0

	r := ComputeRatios(app)
	assert.Equal(t, 1.0, r.DebtToAsset, "no assets means fully leveraged")
	assert.Equal(t, -1.0, r.ProfitMargin, "no revenue means fully unprofitable")

	pct := r.Percentages()
	assert.Equal(t, 100.0, pct["debt_to_asset_ratio"])
	assert.Equal(t, -100.0, pct["profit_margin"])
}

func TestComputeRatiosZeroLoanAmount(t *testing.T) {
	app := healthyApplication()
	app.LoanAmount = 0

	r := ComputeRatios(app)
	assert.Equal(t, 0.0, r.CollateralCoverage, "no loan amount means worst-case coverage, never Inf")
	assert.False(t, math.IsInf(r.CollateralCoverage, 0))
	assert.False(t, math.IsNaN(r.CollateralCoverage))
}

func TestDecideAgroScoreClamped(t *testing.T) {
	dec, err := testEngine().Decide(uuid.New(), 135, healthyApplication())
	require.NoError(t, err)
	assert.Equal(t, 100.0, dec.AgroScore)

	dec, err = testEngine().Decide(uuid.New(), -10, healthyApplication())
	require.NoError(t, err)
	assert.Equal(t, 0.0, dec.AgroScore)
}

func TestDecideValidation(t *testing.T) {
	engine := testEngine()

	app := healthyApplication()
	app.LoanAmount = 0
	_, err := engine.Decide(uuid.New(), 80, app)
	assert.ErrorIs(t, err, ErrValidation)

	app = healthyApplication()
	app.FarmerName = ""
	_, err = engine.Decide(uuid.New(), 80, app)
	assert.ErrorIs(t, err, ErrValidation)

	app = healthyApplication()
	app.TotalDebt = -1
	_, err = engine.Decide(uuid.New(), 80, app)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engine.Decide(uuid.Nil, 80, healthyApplication())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engine.Decide(uuid.New(), math.NaN(), healthyApplication())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecisionCarriesAuditFields(t *testing.T) {
	assessmentID := uuid.New()
	dec, err := testEngine().Decide(assessmentID, 80, healthyApplication())
	require.NoError(t, err)

	assert.Equal(t, assessmentID, dec.AssessmentID)
	assert.NotEqual(t, uuid.Nil, dec.ID)
	assert.False(t, dec.CreatedAt.IsZero())
	assert.Contains(t, dec.Ratios, "debt_to_asset_ratio")
	assert.Contains(t, dec.Ratios, "profit_margin")
	assert.Contains(t, dec.Ratios, "collateral_coverage")
}
