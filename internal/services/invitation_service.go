package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/notifier"
	"github.com/msme-awards/adjudication-api/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InvitationService sends registration invitations and records them.
// The invitation e-mail is a critical send: an invite that was never
// delivered must not be reported as sent.
type InvitationService struct {
	invitations store.Invitations
	notify      notifier.Notifier
	now         func() time.Time
}

func NewInvitationService(invitations store.Invitations, notify notifier.Notifier) *InvitationService {
	return &InvitationService{invitations: invitations, notify: notify, now: time.Now}
}

func (s *InvitationService) Send(actor *models.Account, req *dto.SendInviteRequest) error {
	if req.Email == "" || req.RegistrationURL == "" || req.Role == "" {
		return fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	err := s.notify.Send(notifier.Message{
		To:   req.Email,
		Kind: notifier.KindInvitation,
		Data: map[string]string{
			"registrationUrl": req.RegistrationURL,
			"role":            req.Role,
			"adminName":       actor.DisplayName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}

	return s.invitations.Create(&models.Invitation{
		Email:           req.Email,
		RegistrationURL: req.RegistrationURL,
		Role:            req.Role,
		SentBy:          actor.UID,
		SentByName:      actor.DisplayName,
		SentAt:          s.now(),
		Status:          "sent",
	})
}
