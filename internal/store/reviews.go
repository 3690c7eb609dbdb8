package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msme-awards/adjudication-api/internal/models"
	"gorm.io/gorm"
)

// Reviews is the repository for adjudication reviews.
type Reviews interface {
	FindByApplicationAndAdjudicator(applicationID, adjudicatorID string) (*models.Review, error)
	// Create inserts a new review. The unique index on
	// (application_id, adjudicator_id) turns a concurrent duplicate
	// create into ErrDuplicate so the caller can retry as an update.
	Create(review *models.Review) error
	Update(id string, fields map[string]interface{}) error
	ListByAdjudicator(adjudicatorID string) ([]models.Review, error)
	ListByApplication(applicationID string) ([]models.Review, error)
	ListAll() ([]models.Review, error)
	CountsByApplication() (map[string]int64, error)
}

type reviewStore struct {
	db *gorm.DB
}

func NewReviews(db *gorm.DB) Reviews {
	return &reviewStore{db: db}
}

func (s *reviewStore) FindByApplicationAndAdjudicator(applicationID, adjudicatorID string) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("application_id = ? AND adjudicator_id = ?", applicationID, adjudicatorID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &review, nil
}

func (s *reviewStore) Create(review *models.Review) error {
	if err := s.db.Create(review).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *reviewStore) Update(id string, fields map[string]interface{}) error {
	result := s.db.Model(&models.Review{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *reviewStore) ListByAdjudicator(adjudicatorID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("adjudicator_id = ?", adjudicatorID).
		Order("reviewed_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewStore) ListByApplication(applicationID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("application_id = ?", applicationID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list application reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewStore) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list all reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewStore) CountsByApplication() (map[string]int64, error) {
	type row struct {
		ApplicationID string
		Count         int64
	}
	var rows []row
	err := s.db.Model(&models.Review{}).
		Select("application_id, count(*) as count").
		Group("application_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ApplicationID] = r.Count
	}
	return counts, nil
}
