package store

import (
	"fmt"

	"github.com/msme-awards/adjudication-api/internal/models"
	"gorm.io/gorm"
)

// Invitations records invitation e-mails for auditing.
type Invitations interface {
	Create(invitation *models.Invitation) error
	ListByEmail(email string) ([]models.Invitation, error)
}

type invitationStore struct {
	db *gorm.DB
}

func NewInvitations(db *gorm.DB) Invitations {
	return &invitationStore{db: db}
}

func (s *invitationStore) Create(invitation *models.Invitation) error {
	if err := s.db.Create(invitation).Error; err != nil {
		return fmt.Errorf("failed to record invitation: %w", err)
	}
	return nil
}

func (s *invitationStore) ListByEmail(email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := s.db.Where("email = ?", email).Order("sent_at desc").Find(&invitations).Error; err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}
