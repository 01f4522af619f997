package credit

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrValidation marks a malformed or out-of-range loan application field.
// Callers are expected to correct the input and resubmit.
var ErrValidation = errors.New("invalid loan application")

// LandOwnership describes how the applicant holds their land.
type LandOwnership string

const (
	OwnershipOwned       LandOwnership = "owned"
	OwnershipLeasedLong  LandOwnership = "leased_long"
	OwnershipLeasedShort LandOwnership = "leased_short"
)

// LoanApplication carries the applicant's identity and balance-sheet data for
// one loan request. All monetary fields are in UZS.
type LoanApplication struct {
	FarmerName       string        `json:"farmer_name"`
	PassportID       string        `json:"passport_id"`
	Phone            string        `json:"phone"`
	YearsFarming     int           `json:"years_farming"`
	LandAreaHa       float64       `json:"land_area"`
	LandOwnership    LandOwnership `json:"land_ownership"`
	LoanAmount       float64       `json:"loan_amount"`
	LoanTermMonths   int           `json:"loan_term"`
	AnnualRevenue    float64       `json:"annual_revenue"`
	NetProfit        float64       `json:"net_profit"`
	TotalAssets      float64       `json:"total_assets"`
	TotalDebt        float64       `json:"total_debt"`
	CollateralValue  float64       `json:"collateral_value"`
	PreviousDefaults bool          `json:"previous_defaults"`
}

// Validate rejects malformed applications. Every numeric field must be
// non-negative except net profit, and a loan cannot be decided for a zero
// amount or term.
func (a LoanApplication) Validate() error {
	if a.FarmerName == "" {
		return fmt.Errorf("%w: farmer name is required", ErrValidation)
	}
	if a.PassportID == "" {
		return fmt.Errorf("%w: passport ID is required", ErrValidation)
	}
	if a.LoanAmount <= 0 {
		return fmt.Errorf("%w: loan amount must be positive", ErrValidation)
	}
	if a.LoanTermMonths <= 0 {
		return fmt.Errorf("%w: loan term must be positive", ErrValidation)
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"years_farming", float64(a.YearsFarming)},
		{"land_area", a.LandAreaHa},
		{"annual_revenue", a.AnnualRevenue},
		{"total_assets", a.TotalAssets},
		{"total_debt", a.TotalDebt},
		{"collateral_value", a.CollateralValue},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative", ErrValidation, f.name)
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"loan_amount", a.LoanAmount},
		{"annual_revenue", a.AnnualRevenue},
		{"net_profit", a.NetProfit},
		{"total_assets", a.TotalAssets},
		{"total_debt", a.TotalDebt},
		{"collateral_value", a.CollateralValue},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrValidation, f.name)
		}
	}
	return nil
}

// Ratios are the derived balance-sheet ratios the decision rules act on,
// expressed as fractions.
type Ratios struct {
	DebtToAsset        float64 `json:"debt_to_asset"`
	ProfitMargin       float64 `json:"profit_margin"`
	CollateralCoverage float64 `json:"collateral_coverage"`
}

// Percentages renders the ratios as rounded percentages for audit and report
// output, under the field names downstream rendering expects.
func (r Ratios) Percentages() map[string]float64 {
	return map[string]float64{
		"debt_to_asset_ratio": round1(r.DebtToAsset * 100),
		"profit_margin":       round1(r.ProfitMargin * 100),
		"collateral_coverage": round1(r.CollateralCoverage * 100),
	}
}

// Decision is the final outcome label of a credit evaluation.
type Decision string

const (
	DecisionApproved     Decision = "APPROVED"
	DecisionManualReview Decision = "MANUAL_REVIEW"
	DecisionRejected     Decision = "REJECTED"
)

// CreditDecision is the auditable result of one loan evaluation, tied to
// exactly one risk assessment. Immutable after creation.
type CreditDecision struct {
	ID             uuid.UUID          `json:"id"`
	AssessmentID   uuid.UUID          `json:"assessment_id"`
	AgroScore      float64            `json:"agro_score"`
	FinancialScore float64            `json:"financial_score"`
	FinalScore     float64            `json:"final_score"`
	Decision       Decision           `json:"decision"`
	Ratios         map[string]float64 `json:"factors"`
	CreatedAt      time.Time          `json:"created_at"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
