package store

import (
	"errors"
	"fmt"

	"github.com/msme-awards/adjudication-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Decisions is the repository for final decisions.
type Decisions interface {
	// Put writes the decision, replacing any prior record for the same
	// application id.
	Put(decision *models.FinalDecision) error
	Get(applicationID string) (*models.FinalDecision, error)
	ListAll() ([]models.FinalDecision, error)
}

type decisionStore struct {
	db *gorm.DB
}

func NewDecisions(db *gorm.DB) Decisions {
	return &decisionStore{db: db}
}

func (s *decisionStore) Put(decision *models.FinalDecision) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}},
		UpdateAll: true,
	}).Create(decision).Error
	if err != nil {
		return fmt.Errorf("failed to store final decision: %w", err)
	}
	return nil
}

func (s *decisionStore) Get(applicationID string) (*models.FinalDecision, error) {
	var decision models.FinalDecision
	if err := s.db.Where("application_id = ?", applicationID).First(&decision).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load final decision: %w", err)
	}
	return &decision, nil
}

func (s *decisionStore) ListAll() ([]models.FinalDecision, error) {
	var decisions []models.FinalDecision
	if err := s.db.Order("decided_at desc").Find(&decisions).Error; err != nil {
		return nil, fmt.Errorf("failed to list final decisions: %w", err)
	}
	return decisions, nil
}
