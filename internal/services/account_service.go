package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/notifier"
	"github.com/msme-awards/adjudication-api/internal/store"
)

// AccountService owns the pending→approved/rejected state machine and
// profile self-service. Every role/status mutation mirrors into the
// identity provider's custom claims; a claim-sync failure is reported,
// not swallowed, because authorization elsewhere may trust claims.
type AccountService struct {
	accounts store.Accounts
	activity store.Activity
	idp      identity.Provider
	notify   notifier.Notifier
	now      func() time.Time
}

func NewAccountService(
	accounts store.Accounts,
	activity store.Activity,
	idp identity.Provider,
	notify notifier.Notifier,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		activity: activity,
		idp:      idp,
		notify:   notify,
		now:      time.Now,
	}
}

// Approve moves the account to approved and grants the role it applied
// for. Re-approving an already-approved account re-applies the writes.
func (s *AccountService) Approve(actorUID, userID string) error {
	account, err := s.get(userID)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.accounts.Update(userID, map[string]interface{}{
		"status":      models.StatusApproved,
		"role":        account.RequestedRole,
		"approved_by": actorUID,
		"approved_at": now,
	})
	if err != nil {
		return err
	}

	if err := s.idp.SetClaims(userID, map[string]interface{}{
		"role":   account.RequestedRole,
		"status": models.StatusApproved,
	}); err != nil {
		return fmt.Errorf("account approved but claim sync failed: %w", err)
	}

	s.logActivity(models.ActionApplicationApproved, userID, actorUID, "")

	notifier.BestEffort(s.notify, notifier.Message{
		To:   account.Email,
		Kind: notifier.KindAccountApproved,
		Data: map[string]string{
			"userName": account.DisplayName,
			"userRole": account.RequestedRole,
		},
	})
	return nil
}

// Reject moves the account to rejected. Only status is mirrored into
// claims; the stored role is left as a record of what was requested.
func (s *AccountService) Reject(actorUID, userID, reason string) error {
	account, err := s.get(userID)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.accounts.Update(userID, map[string]interface{}{
		"status":           models.StatusRejected,
		"rejected_by":      actorUID,
		"rejected_at":      now,
		"rejection_reason": reason,
	})
	if err != nil {
		return err
	}

	if err := s.idp.SetClaims(userID, map[string]interface{}{
		"status": models.StatusRejected,
	}); err != nil {
		return fmt.Errorf("account rejected but claim sync failed: %w", err)
	}

	s.logActivity(models.ActionApplicationRejected, userID, actorUID, reason)

	if reason == "" {
		reason = "No specific reason provided"
	}
	notifier.BestEffort(s.notify, notifier.Message{
		To:   account.Email,
		Kind: notifier.KindAccountRejected,
		Data: map[string]string{
			"userName":        account.DisplayName,
			"rejectionReason": reason,
		},
	})
	return nil
}

// AssignRole overwrites the granted role. Approval status is a separate
// axis and is not touched.
func (s *AccountService) AssignRole(actorUID, userID, role string) error {
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}

	err := s.accounts.Update(userID, map[string]interface{}{
		"role": role,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := s.idp.SetClaims(userID, map[string]interface{}{
		"role": role,
	}); err != nil {
		return fmt.Errorf("role assigned but claim sync failed: %w", err)
	}

	s.logActivity(models.ActionRoleAssigned, userID, actorUID, role)
	return nil
}

// CheckStatus returns the caller's own account state.
func (s *AccountService) CheckStatus(uid string) (*dto.StatusResponse, error) {
	account, err := s.get(uid)
	if err != nil {
		return nil, err
	}
	return statusResponse(account), nil
}

func (s *AccountService) ListUsers() ([]models.Account, error) {
	return s.accounts.List()
}

// PendingApplications lists accounts awaiting an approval decision.
func (s *AccountService) PendingApplications() ([]models.Account, error) {
	return s.accounts.ListByStatus(models.StatusPending)
}

// TotalAdjudicators counts approved adjudicator accounts.
func (s *AccountService) TotalAdjudicators() (int64, error) {
	return s.accounts.CountByRoleAndStatus(models.RoleAdjudicator, models.StatusApproved)
}

func (s *AccountService) ActivityLogs() ([]models.ActivityLog, error) {
	return s.activity.ListRecent(100)
}

// GetProfile returns a profile, visible to its owner and to admins.
func (s *AccountService) GetProfile(requesterUID, requesterRole, userID string) (*models.Account, error) {
	if requesterUID != userID && requesterRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.get(userID)
}

// UpdateProfile applies the self-service profile fields. Role and
// status are never updatable through this path.
func (s *AccountService) UpdateProfile(requesterUID, userID string, req *dto.UpdateProfileRequest) error {
	if requesterUID != userID {
		return ErrForbidden
	}

	fields := map[string]interface{}{}
	if req.DisplayName != "" {
		fields["display_name"] = req.DisplayName
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.accounts.Update(userID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

func (s *AccountService) UpdatePicture(requesterUID, userID, imageData string) error {
	if requesterUID != userID {
		return ErrForbidden
	}
	err := s.accounts.Update(userID, map[string]interface{}{
		"profile_picture": imageData,
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

func (s *AccountService) get(uid string) (*models.Account, error) {
	account, err := s.accounts.Get(uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) logActivity(action, userID, actorID, reason string) {
	entry := &models.ActivityLog{
		Action:    action,
		UserID:    userID,
		ActorID:   actorID,
		Reason:    reason,
		Timestamp: s.now(),
	}
	if err := s.activity.Append(entry); err != nil {
		slog.Error("failed to append activity log", "action", action, "user_id", userID, "error", err)
	}
}

func statusResponse(a *models.Account) *dto.StatusResponse {
	return &dto.StatusResponse{
		UID:            a.UID,
		Email:          a.Email,
		DisplayName:    a.DisplayName,
		PhoneNumber:    a.PhoneNumber,
		Company:        a.Company,
		Description:    a.Description,
		ProfilePicture: a.ProfilePicture,
		Role:           a.Role,
		Status:         a.Status,
		CanAccess:      a.CanAccess(),
	}
}
