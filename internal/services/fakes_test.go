package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/notifier"
	"github.com/msme-awards/adjudication-api/internal/store"
	"gorm.io/datatypes"
)

// In-memory doubles for the store and identity interfaces the services
// depend on. Each applies the same update-field names the gorm
// implementations use, so the services see identical behavior.

type fakeLinks struct {
	mu    sync.Mutex
	links map[string]*models.RegistrationLink
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{links: map[string]*models.RegistrationLink{}}
}

func (f *fakeLinks) Get(token string) (*models.RegistrationLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *link
	return &copied, nil
}

func (f *fakeLinks) Create(link *models.RegistrationLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *link
	f.links[link.Token] = &copied
	return nil
}

func (f *fakeLinks) Claim(token string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[token]
	if !ok || link.Used {
		return false, nil
	}
	link.Used = true
	link.UsedAt = &at
	return true, nil
}

func (f *fakeLinks) AttachUser(token, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if link, ok := f.links[token]; ok {
		link.UsedBy = &uid
	}
	return nil
}

func (f *fakeLinks) Release(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if link, ok := f.links[token]; ok {
		link.Used = false
		link.UsedBy = nil
		link.UsedAt = nil
	}
	return nil
}

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: map[string]*models.Account{}}
}

func (f *fakeAccounts) Get(uid string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccounts) Create(account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *account
	f.accounts[account.UID] = &copied
	return nil
}

func (f *fakeAccounts) Update(uid string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[uid]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			account.Status = value.(string)
		case "role":
			account.Role = value.(string)
		case "approved_by":
			v := value.(string)
			account.ApprovedBy = &v
		case "approved_at":
			v := value.(time.Time)
			account.ApprovedAt = &v
		case "rejected_by":
			v := value.(string)
			account.RejectedBy = &v
		case "rejected_at":
			v := value.(time.Time)
			account.RejectedAt = &v
		case "rejection_reason":
			account.RejectionReason = value.(string)
		case "display_name":
			account.DisplayName = value.(string)
		case "phone_number":
			account.PhoneNumber = value.(string)
		case "company":
			account.Company = value.(string)
		case "description":
			account.Description = value.(string)
		case "profile_picture":
			account.ProfilePicture = value.(string)
		}
	}
	return nil
}

func (f *fakeAccounts) List() ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccounts) ListByStatus(status string) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for _, a := range f.accounts {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAccounts) ListByRoleAndStatus(role, status string) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for _, a := range f.accounts {
		if a.Role == role && a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAccounts) CountByRoleAndStatus(role, status string) (int64, error) {
	accounts, _ := f.ListByRoleAndStatus(role, status)
	return int64(len(accounts)), nil
}

type fakeReviews struct {
	mu        sync.Mutex
	byID      map[string]*models.Review
	createErr error
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{byID: map[string]*models.Review{}}
}

func (f *fakeReviews) FindByApplicationAndAdjudicator(applicationID, adjudicatorID string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.ApplicationID == applicationID && r.AdjudicatorID == adjudicatorID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeReviews) Create(review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.byID {
		if r.ApplicationID == review.ApplicationID && r.AdjudicatorID == review.AdjudicatorID {
			return store.ErrDuplicate
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = review.ReviewedAt
	copied := *review
	f.byID[review.ID.String()] = &copied
	return nil
}

func (f *fakeReviews) Update(id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "decision":
			review.Decision = value.(string)
		case "comments":
			review.Comments = value.(string)
		case "total_score":
			review.TotalScore = value.(int)
		case "score_percentage":
			review.ScorePercentage = value.(int)
		case "reviewed_at":
			review.ReviewedAt = value.(time.Time)
		case "adjudicator_name":
			review.AdjudicatorName = value.(string)
		case "adjudicator_email":
			review.AdjudicatorEmail = value.(string)
		case "adjudicator_profile_picture":
			review.AdjudicatorProfilePicture = value.(string)
		case "scores":
			if scores, ok := value.(datatypes.JSONMap); ok {
				review.Scores = scores
			}
		}
	}
	return nil
}

func (f *fakeReviews) ListByAdjudicator(adjudicatorID string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.byID {
		if r.AdjudicatorID == adjudicatorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListByApplication(applicationID string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.byID {
		if r.ApplicationID == applicationID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListAll() ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.byID {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviews) CountsByApplication() (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, r := range f.byID {
		counts[r.ApplicationID]++
	}
	return counts, nil
}

type fakeDecisions struct {
	mu        sync.Mutex
	decisions map[string]*models.FinalDecision
}

func newFakeDecisions() *fakeDecisions {
	return &fakeDecisions{decisions: map[string]*models.FinalDecision{}}
}

func (f *fakeDecisions) Put(decision *models.FinalDecision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *decision
	f.decisions[decision.ApplicationID] = &copied
	return nil
}

func (f *fakeDecisions) Get(applicationID string) (*models.FinalDecision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	decision, ok := f.decisions[applicationID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *decision
	return &copied, nil
}

func (f *fakeDecisions) ListAll() ([]models.FinalDecision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FinalDecision
	for _, d := range f.decisions {
		out = append(out, *d)
	}
	return out, nil
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []models.ActivityLog
}

func (f *fakeActivity) Append(entry *models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivity) ListRecent(limit int) ([]models.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) > limit {
		return f.entries[len(f.entries)-limit:], nil
	}
	return f.entries, nil
}

type fakeInvitations struct {
	mu      sync.Mutex
	created []models.Invitation
}

func (f *fakeInvitations) Create(invitation *models.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *invitation)
	return nil
}

func (f *fakeInvitations) ListByEmail(email string) ([]models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invitation
	for _, inv := range f.created {
		if inv.Email == email {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeIdentity struct {
	mu        sync.Mutex
	nextUID   int
	createErr error
	claimsErr error
	claims    map[string]map[string]interface{}
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{claims: map[string]map[string]interface{}{}}
}

func (f *fakeIdentity) CreateIdentity(email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextUID++
	return fmt.Sprintf("uid-%d", f.nextUID), nil
}

func (f *fakeIdentity) IssueToken(email, password string) (string, *identity.Principal, error) {
	return "", nil, errors.New("not implemented")
}

func (f *fakeIdentity) VerifyCredential(token string) (*identity.Principal, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeIdentity) SetClaims(uid string, claims map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimsErr != nil {
		return f.claimsErr
	}
	merged, ok := f.claims[uid]
	if !ok {
		merged = map[string]interface{}{}
		f.claims[uid] = merged
	}
	for k, v := range claims {
		merged[k] = v
	}
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notifier.Message
	err  error
}

func (f *fakeNotifier) Send(m notifier.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeNotifier) sentTo(address string) []notifier.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notifier.Message
	for _, m := range f.sent {
		if m.To == address {
			out = append(out, m)
		}
	}
	return out
}
