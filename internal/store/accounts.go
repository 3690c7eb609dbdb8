package store

import (
	"errors"
	"fmt"

	"github.com/msme-awards/adjudication-api/internal/models"
	"gorm.io/gorm"
)

// Accounts is the repository for user account documents.
type Accounts interface {
	Get(uid string) (*models.Account, error)
	Create(account *models.Account) error
	// Update applies a partial (merge) update to the account.
	Update(uid string, fields map[string]interface{}) error
	List() ([]models.Account, error)
	ListByStatus(status string) ([]models.Account, error)
	ListByRoleAndStatus(role, status string) ([]models.Account, error)
	CountByRoleAndStatus(role, status string) (int64, error)
}

type accountStore struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) Accounts {
	return &accountStore{db: db}
}

func (s *accountStore) Get(uid string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("uid = ?", uid).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}

func (s *accountStore) Create(account *models.Account) error {
	if err := s.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *accountStore) Update(uid string, fields map[string]interface{}) error {
	result := s.db.Model(&models.Account{}).Where("uid = ?", uid).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *accountStore) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("created_at desc").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountStore) ListByStatus(status string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("status = ?", status).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts by status: %w", err)
	}
	return accounts, nil
}

func (s *accountStore) ListByRoleAndStatus(role, status string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("role = ? AND status = ?", role, status).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts by role: %w", err)
	}
	return accounts, nil
}

func (s *accountStore) CountByRoleAndStatus(role, status string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Account{}).Where("role = ? AND status = ?", role, status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
