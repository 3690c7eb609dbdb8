package store

import (
	"fmt"

	"github.com/msme-awards/adjudication-api/internal/models"
	"gorm.io/gorm"
)

// Activity is the append-only audit log repository.
type Activity interface {
	Append(entry *models.ActivityLog) error
	ListRecent(limit int) ([]models.ActivityLog, error)
}

type activityStore struct {
	db *gorm.DB
}

func NewActivity(db *gorm.DB) Activity {
	return &activityStore{db: db}
}

func (s *activityStore) Append(entry *models.ActivityLog) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

func (s *activityStore) ListRecent(limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := s.db.Order("timestamp desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return entries, nil
}
