package services

import (
	"crypto/rand"
	"encoding/base64"
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

// RegistrationService owns the registration-link lifecycle and the
// sign-up that consumes a link.
type RegistrationService struct {
	links      store.Links
	accounts   store.Accounts
	idp        identity.Provider
	notify     notifier.Notifier
	clientURL  string
	defaultTTL time.Duration
	now        func() time.Time
}

func NewRegistrationService(
	links store.Links,
	accounts store.Accounts,
	idp identity.Provider,
	notify notifier.Notifier,
	clientURL string,
	defaultTTL time.Duration,
) *RegistrationService {
	return &RegistrationService{
		links:      links,
		accounts:   accounts,
		idp:        idp,
		notify:     notify,
		clientURL:  clientURL,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Issue creates a single-use registration link. expiresIn is in
// seconds; zero means the configured default.
func (s *RegistrationService) Issue(createdBy, requestedRole string, expiresIn int) (*models.RegistrationLink, string, error) {
	if requestedRole == "" {
		requestedRole = models.RoleViewer
	}
	if !models.ValidRole(requestedRole) {
		return nil, "", ErrInvalidRole
	}

	ttl := s.defaultTTL
	if expiresIn > 0 {
		ttl = time.Duration(expiresIn) * time.Second
	}

	token, err := generateLinkToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate link token: %w", err)
	}

	link := &models.RegistrationLink{
		Token:         token,
		CreatedBy:     createdBy,
		RequestedRole: requestedRole,
		ExpiresAt:     s.now().Add(ttl),
	}
	if err := s.links.Create(link); err != nil {
		return nil, "", err
	}

	url := fmt.Sprintf("%s/auth/register?token=%s", s.clientURL, token)
	return link, url, nil
}

// Verify is the side-effect-free probe used by the registration page.
func (s *RegistrationService) Verify(token string) (string, error) {
	link, err := s.validate(token)
	if err != nil {
		return "", err
	}
	return link.RequestedRole, nil
}

// Consume validates the link, claims it atomically, and provisions the
// identity and pending account. A concurrent consumer that loses the
// claim gets ErrLinkAlreadyUsed.
func (s *RegistrationService) Consume(req *dto.SignUpRequest) (string, error) {
	if req.Email == "" || req.Password == "" || req.DisplayName == "" || req.RegistrationToken == "" {
		return "", fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	link, err := s.validate(req.RegistrationToken)
	if err != nil {
		return "", err
	}

	claimed, err := s.links.Claim(link.Token, s.now())
	if err != nil {
		return "", err
	}
	if !claimed {
		return "", ErrLinkAlreadyUsed
	}

	uid, err := s.idp.CreateIdentity(req.Email, req.Password, req.DisplayName)
	if err != nil {
		if releaseErr := s.links.Release(link.Token); releaseErr != nil {
			slog.Error("failed to release registration link after sign-up failure",
				"token", link.Token, "error", releaseErr)
		}
		return "", err
	}

	creatorName := "Unknown Admin"
	if creator, err := s.accounts.Get(link.CreatedBy); err == nil {
		creatorName = creator.DisplayName
	}

	account := &models.Account{
		UID:            uid,
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		PhoneNumber:    req.PhoneNumber,
		Company:        req.Company,
		Description:    req.Description,
		ProfilePicture: req.ProfilePicture,
		Role:           models.RolePending,
		RequestedRole:  link.RequestedRole,
		Status:         models.StatusPending,
		AddedBy:        link.CreatedBy,
		AddedByName:    creatorName,
	}
	if err := s.accounts.Create(account); err != nil {
		return "", err
	}

	if err := s.links.AttachUser(link.Token, uid); err != nil {
		slog.Error("failed to record link consumer", "token", link.Token, "error", err)
	}

	if err := s.idp.SetClaims(uid, map[string]interface{}{
		"role":   models.RolePending,
		"status": models.StatusPending,
	}); err != nil {
		return "", fmt.Errorf("account created but claim sync failed: %w", err)
	}

	s.notifyAdmins(account, link.RequestedRole)

	return uid, nil
}

func (s *RegistrationService) validate(token string) (*models.RegistrationLink, error) {
	link, err := s.links.Get(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if link.Used {
		return nil, ErrLinkAlreadyUsed
	}
	if s.now().After(link.ExpiresAt) {
		return nil, ErrLinkExpired
	}
	return link, nil
}

// notifyAdmins fans the new-user alert out to every approved admin.
// Delivery is best-effort; a failed send never fails the sign-up.
func (s *RegistrationService) notifyAdmins(account *models.Account, requestedRole string) {
	admins, err := s.accounts.ListByRoleAndStatus(models.RoleAdmin, models.StatusApproved)
	if err != nil {
		slog.Error("failed to list admins for new-user alert", "error", err)
		return
	}

	registrationDate := s.now().Format("January 2, 2006 03:04 PM")
	for _, admin := range admins {
		notifier.BestEffort(s.notify, notifier.Message{
			To:   admin.Email,
			Kind: notifier.KindAdminNewUserAlert,
			Data: map[string]string{
				"adminName":        admin.DisplayName,
				"newUserName":      account.DisplayName,
				"newUserEmail":     account.Email,
				"newUserRole":      requestedRole,
				"registrationDate": registrationDate,
			},
		})
	}
}

func generateLinkToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
