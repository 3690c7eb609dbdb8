package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/notifier"
	"github.com/msme-awards/adjudication-api/internal/store"
)

// DecisionService owns the admin's final verdict on an application.
// Unlike every other notification in the system, the applicant-facing
// finalize e-mails are critical sends: a delivery failure fails the
// operation, because finalization without applicant notice is an
// unfinished act.
type DecisionService struct {
	decisions store.Decisions
	notify    notifier.Notifier
	now       func() time.Time
}

func NewDecisionService(decisions store.Decisions, notify notifier.Notifier) *DecisionService {
	return &DecisionService{decisions: decisions, notify: notify, now: time.Now}
}

// FinalizeApproval records the terminal approved decision, replacing
// any prior decision for the application.
func (s *DecisionService) FinalizeApproval(actor *models.Account, req *dto.FinalDecisionRequest) error {
	if err := validateDecisionRequest(req); err != nil {
		return err
	}

	decision := &models.FinalDecision{
		ApplicationID:  req.ApplicationID,
		Decision:       models.DecisionApproved,
		DecidedBy:      actor.UID,
		DecidedByName:  actor.DisplayName,
		DecidedAt:      s.now(),
		ApplicantEmail: req.ApplicantEmail,
		ApplicantName:  req.ApplicantName,
		CompanyName:    req.CompanyName,
	}
	if err := s.decisions.Put(decision); err != nil {
		return err
	}

	return s.notify.Send(notifier.Message{
		To:   req.ApplicantEmail,
		Kind: notifier.KindApplicationApproved,
		Data: map[string]string{
			"applicantName": req.ApplicantName,
			"companyName":   req.CompanyName,
		},
	})
}

// FinalizeRejection records the terminal rejected decision.
func (s *DecisionService) FinalizeRejection(actor *models.Account, req *dto.FinalDecisionRequest) error {
	if err := validateDecisionRequest(req); err != nil {
		return err
	}

	reason := req.Reason
	if reason == "" {
		reason = "Not specified"
	}

	decision := &models.FinalDecision{
		ApplicationID:   req.ApplicationID,
		Decision:        models.DecisionRejected,
		DecidedBy:       actor.UID,
		DecidedByName:   actor.DisplayName,
		DecidedAt:       s.now(),
		ApplicantEmail:  req.ApplicantEmail,
		ApplicantName:   req.ApplicantName,
		CompanyName:     req.CompanyName,
		RejectionReason: reason,
	}
	if err := s.decisions.Put(decision); err != nil {
		return err
	}

	return s.notify.Send(notifier.Message{
		To:   req.ApplicantEmail,
		Kind: notifier.KindApplicationRejected,
		Data: map[string]string{
			"applicantName": req.ApplicantName,
			"companyName":   req.CompanyName,
			"reason":        req.Reason,
		},
	})
}

// Get returns the stored decision, or nil when none has been recorded.
func (s *DecisionService) Get(applicationID string) (*models.FinalDecision, error) {
	decision, err := s.decisions.Get(applicationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decision, nil
}

func (s *DecisionService) ListAll() ([]models.FinalDecision, error) {
	return s.decisions.ListAll()
}

func validateDecisionRequest(req *dto.FinalDecisionRequest) error {
	if req.ApplicationID == "" || req.ApplicantEmail == "" || req.ApplicantName == "" || req.CompanyName == "" {
		return fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	return nil
}
