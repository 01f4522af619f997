package storage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Farmer is a loan applicant, deduplicated by passport ID.
type Farmer struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	PassportID string    `json:"passport_id" gorm:"uniqueIndex;not null"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

// AssessmentRecord persists one risk assessment together with its ranked
// factors and crop recommendations.
type AssessmentRecord struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	FarmerID        *uuid.UUID     `json:"farmer_id,omitempty" gorm:"type:uuid;index"`
	Region          string         `json:"region" gorm:"not null"`
	District        string         `json:"district" gorm:"not null"`
	Crop            string         `json:"crop" gorm:"not null"`
	Month           int            `json:"month"`
	Score           float64        `json:"risk_score"`
	Category        string         `json:"risk_category"`
	TrafficLight    string         `json:"traffic_light"`
	Confidence      string         `json:"confidence"`
	TopFactors      datatypes.JSON `json:"top_factors"`
	Recommendations datatypes.JSON `json:"recommendations"`
	LocationInfo    datatypes.JSON `json:"location_info"`
	CropInfo        datatypes.JSON `json:"crop_info"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ApplicationRecord persists one loan application.
type ApplicationRecord struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FarmerID         uuid.UUID `json:"farmer_id" gorm:"type:uuid;index;not null"`
	AssessmentID     uuid.UUID `json:"assessment_id" gorm:"type:uuid;index;not null"`
	LoanAmount       float64   `json:"loan_amount"`
	LoanTermMonths   int       `json:"loan_term"`
	LandAreaHa       float64   `json:"land_area"`
	LandOwnership    string    `json:"land_ownership"`
	YearsFarming     int       `json:"years_farming"`
	AnnualRevenue    float64   `json:"annual_revenue"`
	NetProfit        float64   `json:"net_profit"`
	TotalAssets      float64   `json:"total_assets"`
	TotalDebt        float64   `json:"total_debt"`
	CollateralValue  float64   `json:"collateral_value"`
	PreviousDefaults bool      `json:"previous_defaults"`
	CreatedAt        time.Time `json:"created_at"`
}

// DecisionRecord persists the credit decision for one application.
type DecisionRecord struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ApplicationID  uuid.UUID      `json:"application_id" gorm:"type:uuid;uniqueIndex;not null"`
	AssessmentID   uuid.UUID      `json:"assessment_id" gorm:"type:uuid;index;not null"`
	AgroScore      float64        `json:"agro_score"`
	FinancialScore float64        `json:"financial_score"`
	FinalScore     float64        `json:"final_score"`
	Decision       string         `json:"decision"`
	Ratios         datatypes.JSON `json:"factors"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AutoMigrate creates or updates the schema for all persisted types.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Farmer{},
		&AssessmentRecord{},
		&ApplicationRecord{},
		&DecisionRecord{},
	)
}
