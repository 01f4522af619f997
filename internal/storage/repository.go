package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository provides access to farmers, assessments, applications and
// decisions in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps a gorm connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertFarmer finds a farmer by passport ID or creates a new one, updating
// name and phone when the record already exists.
func (r *Repository) UpsertFarmer(ctx context.Context, name, passportID, phone string) (*Farmer, error) {
	var farmer Farmer

	err := r.db.WithContext(ctx).Where("passport_id = ?", passportID).First(&farmer).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up farmer: %w", err)
		}
		farmer = Farmer{
			ID:         uuid.New(),
			Name:       name,
			PassportID: passportID,
			Phone:      phone,
			CreatedAt:  time.Now().UTC(),
		}
		if err := r.db.WithContext(ctx).Create(&farmer).Error; err != nil {
			return nil, fmt.Errorf("failed to create farmer: %w", err)
		}
		return &farmer, nil
	}

	if farmer.Name != name || farmer.Phone != phone {
		updates := map[string]interface{}{"name": name, "phone": phone}
		if err := r.db.WithContext(ctx).Model(&farmer).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update farmer: %w", err)
		}
		farmer.Name = name
		farmer.Phone = phone
	}

	return &farmer, nil
}

// CreateAssessment stores a completed risk assessment.
func (r *Repository) CreateAssessment(ctx context.Context, rec *AssessmentRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// GetAssessment loads one assessment by ID.
func (r *Repository) GetAssessment(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &rec, nil
}

// ListAssessments returns the most recent assessments, newest first.
func (r *Repository) ListAssessments(ctx context.Context, limit, offset int) ([]AssessmentRecord, error) {
	var recs []AssessmentRecord

	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)

	if err := query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return recs, nil
}

// CreateApplication stores a loan application.
func (r *Repository) CreateApplication(ctx context.Context, rec *ApplicationRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// CreateDecision stores the credit decision for an application.
func (r *Repository) CreateDecision(ctx context.Context, rec *DecisionRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create decision: %w", err)
	}
	return nil
}

// GetDecision loads one decision by ID.
func (r *Repository) GetDecision(ctx context.Context, id uuid.UUID) (*DecisionRecord, error) {
	var rec DecisionRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return &rec, nil
}

// LoanCase bundles everything needed to render a decision report.
type LoanCase struct {
	Farmer      Farmer
	Application ApplicationRecord
	Decision    DecisionRecord
	Assessment  AssessmentRecord
}

// GetLoanCase assembles the farmer, application, assessment and decision for
// a decision ID.
func (r *Repository) GetLoanCase(ctx context.Context, decisionID uuid.UUID) (*LoanCase, error) {
	decision, err := r.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	var app ApplicationRecord
	if err := r.db.WithContext(ctx).Where("id = ?", decision.ApplicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	var farmer Farmer
	if err := r.db.WithContext(ctx).Where("id = ?", app.FarmerID).First(&farmer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get farmer: %w", err)
	}

	var assessment AssessmentRecord
	if err := r.db.WithContext(ctx).Where("id = ?", decision.AssessmentID).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return &LoanCase{
		Farmer:      farmer,
		Application: app,
		Decision:    *decision,
		Assessment:  assessment,
	}, nil
}
