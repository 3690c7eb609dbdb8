package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/msme-awards/adjudication-api/internal/models"
	"gorm.io/gorm"
)

// Links is the repository for registration links.
type Links interface {
	Get(token string) (*models.RegistrationLink, error)
	Create(link *models.RegistrationLink) error
	// Claim marks the link used if and only if it is still unused. The
	// conditional update is what makes link consumption single-winner
	// under concurrent sign-ups.
	Claim(token string, at time.Time) (bool, error)
	// AttachUser records which account a claimed link produced.
	AttachUser(token, uid string) error
	// Release undoes a claim whose dependent sign-up failed.
	Release(token string) error
}

type linkStore struct {
	db *gorm.DB
}

func NewLinks(db *gorm.DB) Links {
	return &linkStore{db: db}
}

func (s *linkStore) Get(token string) (*models.RegistrationLink, error) {
	var link models.RegistrationLink
	if err := s.db.Where("token = ?", token).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load registration link: %w", err)
	}
	return &link, nil
}

func (s *linkStore) Create(link *models.RegistrationLink) error {
	if err := s.db.Create(link).Error; err != nil {
		return fmt.Errorf("failed to create registration link: %w", err)
	}
	return nil
}

func (s *linkStore) Claim(token string, at time.Time) (bool, error) {
	result := s.db.Model(&models.RegistrationLink{}).
		Where("token = ? AND used = false", token).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim registration link: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (s *linkStore) AttachUser(token, uid string) error {
	if err := s.db.Model(&models.RegistrationLink{}).
		Where("token = ?", token).
		Update("used_by", uid).Error; err != nil {
		return fmt.Errorf("failed to record link consumer: %w", err)
	}
	return nil
}

func (s *linkStore) Release(token string) error {
	result := s.db.Model(&models.RegistrationLink{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{
			"used":    false,
			"used_by": nil,
			"used_at": nil,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to release registration link: %w", result.Error)
	}
	return nil
}
