package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/identity"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/store"
)

type stubProvider struct {
	principals map[string]*identity.Principal
}

func (s *stubProvider) CreateIdentity(email, password, displayName string) (string, error) {
	return "", nil
}

func (s *stubProvider) IssueToken(email, password string) (string, *identity.Principal, error) {
	return "", nil, identity.ErrInvalidCredentials
}

func (s *stubProvider) VerifyCredential(token string) (*identity.Principal, error) {
	principal, ok := s.principals[token]
	if !ok {
		return nil, identity.ErrTokenMalformed
	}
	return principal, nil
}

func (s *stubProvider) SetClaims(uid string, claims map[string]interface{}) error {
	return nil
}

type stubAccounts struct {
	accounts map[string]*models.Account
}

func (s *stubAccounts) Get(uid string) (*models.Account, error) {
	account, ok := s.accounts[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return account, nil
}

func (s *stubAccounts) Create(*models.Account) error { return nil }
func (s *stubAccounts) Update(string, map[string]interface{}) error {
	return nil
}
func (s *stubAccounts) List() ([]models.Account, error)               { return nil, nil }
func (s *stubAccounts) ListByStatus(string) ([]models.Account, error) { return nil, nil }
func (s *stubAccounts) ListByRoleAndStatus(string, string) ([]models.Account, error) {
	return nil, nil
}
func (s *stubAccounts) CountByRoleAndStatus(string, string) (int64, error) { return 0, nil }

// guardApp wires the production guard chain in front of a sentinel
// handler, with one token per seeded account besides "ghost" (a valid
// token whose account row is missing).
func guardApp(accounts map[string]*models.Account) *fiber.App {
	provider := &stubProvider{principals: map[string]*identity.Principal{
		"ghost": {UID: "ghost", Email: "ghost@example.com"},
	}}
	for uid, account := range accounts {
		provider.principals[uid] = &identity.Principal{UID: uid, Email: account.Email}
	}

	app := fiber.New()
	authed := Authenticated(provider, &stubAccounts{accounts: accounts})
	ok := func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }

	admin := app.Group("/admin", authed, RequireApproved(), RequireAdmin())
	admin.Get("/ping", ok)

	adjudicator := app.Group("/adjudicator", authed, RequireApproved(), RequireAdjudicator())
	adjudicator.Get("/ping", ok)

	viewer := app.Group("/viewer", authed, RequireApproved(), RequireViewer())
	viewer.Get("/ping", ok)

	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestGuardsRejectMissingToken(t *testing.T) {
	app := guardApp(nil)
	if code := request(t, app, "/admin/ping", ""); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestGuardsRejectUnknownAccount(t *testing.T) {
	app := guardApp(nil)
	if code := request(t, app, "/admin/ping", "ghost"); code != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404 for missing account row", code)
	}
}

func TestApprovedGateRunsBeforeRoleGate(t *testing.T) {
	// An account holding the admin role but still pending must be
	// refused by the approval gate, never reach the role check.
	app := guardApp(map[string]*models.Account{
		"u1": {
			UID:    "u1",
			Email:  "u1@example.com",
			Role:   models.RoleAdmin,
			Status: models.StatusPending,
		},
	})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer u1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Access denied. Your application is pending." {
		t.Errorf("error = %q, want the approval-gate message", body.Error)
	}
}

func TestRoleGates(t *testing.T) {
	approved := func(role string) *models.Account {
		return &models.Account{
			UID:    "u-" + role,
			Email:  role + "@example.com",
			Role:   role,
			Status: models.StatusApproved,
		}
	}
	app := guardApp(map[string]*models.Account{
		"u-admin":       approved(models.RoleAdmin),
		"u-adjudicator": approved(models.RoleAdjudicator),
		"u-viewer":      approved(models.RoleViewer),
	})

	cases := []struct {
		path  string
		token string
		want  int
	}{
		{"/admin/ping", "u-admin", fiber.StatusOK},
		{"/admin/ping", "u-adjudicator", fiber.StatusForbidden},
		{"/admin/ping", "u-viewer", fiber.StatusForbidden},
		{"/adjudicator/ping", "u-adjudicator", fiber.StatusOK},
		{"/adjudicator/ping", "u-admin", fiber.StatusOK},
		{"/adjudicator/ping", "u-viewer", fiber.StatusForbidden},
		{"/viewer/ping", "u-viewer", fiber.StatusOK},
		{"/viewer/ping", "u-admin", fiber.StatusOK},
		{"/viewer/ping", "u-adjudicator", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		if code := request(t, app, tc.path, tc.token); code != tc.want {
			t.Errorf("%s as %s: status = %d, want %d", tc.path, tc.token, code, tc.want)
		}
	}
}
