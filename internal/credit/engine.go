package credit

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	baseFinancialScore = 70.0

	agroWeight      = 0.4
	financialWeight = 0.6

	approveThreshold = 70.0
	reviewThreshold  = 50.0
)

// Worst-case ratio substitutes for zero denominators. A farmer with no
// recorded assets is treated as fully leveraged; one with no revenue as
// fully unprofitable.
const (
	worstCaseDebtToAsset  = 1.0
	worstCaseProfitMargin = -1.0
	worstCaseCoverage     = 0.0
)

// scoreRule is one independent condition→delta adjustment. Rules are applied
// in table order against the same application and ratios; deltas accumulate
// and the score is clamped only after the full table has run.
type scoreRule struct {
	name    string
	delta   float64
	applies func(app LoanApplication, r Ratios) bool
}

// financialRules is the credit policy. Expressing it as an ordered table
// documents the rules and lets each one be tested in isolation.
var financialRules = []scoreRule{
	{
		name:  "high_leverage",
		delta: -30,
		applies: func(_ LoanApplication, r Ratios) bool {
			return r.DebtToAsset > 0.7
		},
	},
	{
		name:  "elevated_leverage",
		delta: -15,
		applies: func(_ LoanApplication, r Ratios) bool {
			return r.DebtToAsset > 0.5 && r.DebtToAsset <= 0.7
		},
	},
	{
		name:  "thin_margin",
		delta: -10,
		applies: func(_ LoanApplication, r Ratios) bool {
			return r.ProfitMargin < 0.1
		},
	},
	{
		name:  "strong_margin",
		delta: 10,
		applies: func(_ LoanApplication, r Ratios) bool {
			return r.ProfitMargin > 0.3
		},
	},
	{
		name:  "undercollateralized",
		delta: -20,
		applies: func(_ LoanApplication, r Ratios) bool {
			return r.CollateralCoverage < 1.0
		},
	},
	{
		name:  "overcollateralized",
		delta: 10,
		applies: func(_ LoanApplication, r Ratios) bool {
			return r.CollateralCoverage > 1.5
		},
	},
	{
		name:  "previous_default",
		delta: -50,
		applies: func(app LoanApplication, _ Ratios) bool {
			return app.PreviousDefaults
		},
	},
	{
		name:  "inexperienced",
		delta: -10,
		applies: func(app LoanApplication, _ Ratios) bool {
			return app.YearsFarming < 2
		},
	},
	{
		name:  "short_lease",
		delta: -10,
		applies: func(app LoanApplication, _ Ratios) bool {
			return app.LandOwnership == OwnershipLeasedShort
		},
	},
}

// ComputeRatios derives the balance-sheet ratios, substituting worst-case
// values for zero denominators instead of failing. Decide rejects a
// non-positive loan amount before this runs, but direct callers get the same
// worst-case treatment rather than a division by zero.
func ComputeRatios(app LoanApplication) Ratios {
	r := Ratios{}

	if app.TotalAssets > 0 {
		r.DebtToAsset = app.TotalDebt / app.TotalAssets
	} else {
		r.DebtToAsset = worstCaseDebtToAsset
	}

	if app.AnnualRevenue > 0 {
		r.ProfitMargin = app.NetProfit / app.AnnualRevenue
	} else {
		r.ProfitMargin = worstCaseProfitMargin
	}

	if app.LoanAmount > 0 {
		r.CollateralCoverage = app.CollateralValue / app.LoanAmount
	} else {
		r.CollateralCoverage = worstCaseCoverage
	}
	return r
}

// Engine turns a risk score plus a loan application into a credit decision.
// Stateless; safe for concurrent use.
type Engine struct {
	logger zerolog.Logger
}

func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Decide validates the application, runs the rule table over a base financial
// score of 70, blends with the agro risk score (40/60) and maps the final
// score to a decision. Thresholds are inclusive-low, matching the risk
// category convention.
func (e *Engine) Decide(assessmentID uuid.UUID, agroScore float64, app LoanApplication) (*CreditDecision, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	if assessmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing assessment linkage", ErrValidation)
	}
	if math.IsNaN(agroScore) || math.IsInf(agroScore, 0) {
		return nil, fmt.Errorf("%w: agro score is not a finite number", ErrValidation)
	}
	agro := round1(clamp(agroScore, 0, 100))

	ratios := ComputeRatios(app)

	financial := baseFinancialScore
	for _, rule := range financialRules {
		if rule.applies(app, ratios) {
			financial += rule.delta
			e.logger.Debug().
				Str("rule", rule.name).
				Float64("delta", rule.delta).
				Float64("running_score", financial).
				Msg("credit rule applied")
		}
	}
	financial = round1(clamp(financial, 0, 100))

	final := round1(clamp(agro*agroWeight+financial*financialWeight, 0, 100))

	decision := DecisionRejected
	switch {
	case final >= approveThreshold:
		decision = DecisionApproved
	case final >= reviewThreshold:
		decision = DecisionManualReview
	}

	return &CreditDecision{
		ID:             uuid.New(),
		AssessmentID:   assessmentID,
		AgroScore:      agro,
		FinancialScore: financial,
		FinalScore:     final,
		Decision:       decision,
		Ratios:         ratios.Percentages(),
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
