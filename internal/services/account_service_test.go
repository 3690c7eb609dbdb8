package services

import (
	"errors"
	"testing"

	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/notifier"
)

func newAccountFixture() (*AccountService, *fakeAccounts, *fakeActivity, *fakeIdentity, *fakeNotifier) {
	accounts := newFakeAccounts()
	activity := &fakeActivity{}
	idp := newFakeIdentity()
	mail := &fakeNotifier{}
	svc := NewAccountService(accounts, activity, idp, mail)
	return svc, accounts, activity, idp, mail
}

func pendingAccount(uid, requestedRole string) *models.Account {
	return &models.Account{
		UID:           uid,
		Email:         uid + "@example.com",
		DisplayName:   "User " + uid,
		Role:          models.RolePending,
		RequestedRole: requestedRole,
		Status:        models.StatusPending,
	}
}

func TestApproveGrantsRequestedRole(t *testing.T) {
	svc, accounts, activity, idp, mail := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleAdjudicator))

	if err := svc.Approve("admin-1", "u1"); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	account, _ := accounts.Get("u1")
	if account.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", account.Status)
	}
	if account.Role != models.RoleAdjudicator {
		t.Errorf("role = %q, want requested role adjudicator", account.Role)
	}
	if account.ApprovedBy == nil || *account.ApprovedBy != "admin-1" {
		t.Errorf("approvedBy = %v, want admin-1", account.ApprovedBy)
	}

	claims := idp.claims["u1"]
	if claims["role"] != models.RoleAdjudicator || claims["status"] != models.StatusApproved {
		t.Errorf("claims = %v, want adjudicator/approved", claims)
	}

	if len(activity.entries) != 1 || activity.entries[0].Action != models.ActionApplicationApproved {
		t.Errorf("activity = %+v, want one application_approved entry", activity.entries)
	}
	if got := mail.sentTo("u1@example.com"); len(got) != 1 || got[0].Kind != notifier.KindAccountApproved {
		t.Errorf("mail = %+v, want one account-approved message", got)
	}
}

func TestRejectMirrorsOnlyStatusIntoClaims(t *testing.T) {
	svc, accounts, _, idp, mail := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleAdjudicator))

	if err := svc.Reject("admin-1", "u1", "incomplete application"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	account, _ := accounts.Get("u1")
	if account.Status != models.StatusRejected {
		t.Errorf("status = %q, want rejected", account.Status)
	}
	if account.Role != models.RolePending {
		t.Errorf("role = %q, rejection must not touch role", account.Role)
	}
	if account.RejectionReason != "incomplete application" {
		t.Errorf("reason = %q", account.RejectionReason)
	}

	claims := idp.claims["u1"]
	if claims["status"] != models.StatusRejected {
		t.Errorf("claims status = %v, want rejected", claims["status"])
	}
	if _, ok := claims["role"]; ok {
		t.Error("rejection must not mirror role into claims")
	}

	if got := mail.sentTo("u1@example.com"); len(got) != 1 || got[0].Kind != notifier.KindAccountRejected {
		t.Errorf("mail = %+v, want one account-rejected message", got)
	}
}

func TestRejectDefaultsReasonInNotification(t *testing.T) {
	svc, accounts, _, _, mail := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleViewer))

	if err := svc.Reject("admin-1", "u1", ""); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	got := mail.sentTo("u1@example.com")
	if len(got) != 1 {
		t.Fatalf("mail count = %d, want 1", len(got))
	}
	if got[0].Data["rejectionReason"] != "No specific reason provided" {
		t.Errorf("reason = %q", got[0].Data["rejectionReason"])
	}
}

func TestApproveSurfacesClaimSyncFailure(t *testing.T) {
	svc, accounts, _, idp, _ := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleViewer))
	idp.claimsErr = errors.New("claims backend down")

	err := svc.Approve("admin-1", "u1")
	if err == nil {
		t.Fatal("expected claim-sync failure to surface")
	}

	// The document write already happened; the error reports the
	// inconsistency rather than pretending nothing changed.
	account, _ := accounts.Get("u1")
	if account.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved despite claim failure", account.Status)
	}
}

func TestApproveUnknownAccount(t *testing.T) {
	svc, _, _, _, _ := newAccountFixture()

	if err := svc.Approve("admin-1", "ghost"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestAssignRoleValidatesRole(t *testing.T) {
	svc, accounts, _, idp, _ := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleViewer))

	if err := svc.AssignRole("admin-1", "u1", "owner"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}

	if err := svc.AssignRole("admin-1", "u1", models.RoleViewer); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
	account, _ := accounts.Get("u1")
	if account.Role != models.RoleViewer {
		t.Errorf("role = %q, want viewer", account.Role)
	}
	if account.Status != models.StatusPending {
		t.Errorf("status = %q, role assignment must not change status", account.Status)
	}
	if idp.claims["u1"]["role"] != models.RoleViewer {
		t.Errorf("claims = %v, want role viewer", idp.claims["u1"])
	}
}

func TestGetProfileAccessControl(t *testing.T) {
	svc, accounts, _, _, _ := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleViewer))
	accounts.Create(pendingAccount("u2", models.RoleViewer))

	if _, err := svc.GetProfile("u2", models.RoleViewer, "u1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for non-admin stranger", err)
	}
	if _, err := svc.GetProfile("u1", models.RolePending, "u1"); err != nil {
		t.Fatalf("owner access: %v", err)
	}
	if _, err := svc.GetProfile("admin-1", models.RoleAdmin, "u1"); err != nil {
		t.Fatalf("admin access: %v", err)
	}
}

func TestUpdateProfileIsSelfOnly(t *testing.T) {
	svc, accounts, _, _, _ := newAccountFixture()
	accounts.Create(pendingAccount("u1", models.RoleViewer))

	phone := "+60123456789"
	req := &dto.UpdateProfileRequest{DisplayName: "New Name", PhoneNumber: &phone}
	if err := svc.UpdateProfile("u2", "u1", req); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	if err := svc.UpdateProfile("u1", "u1", req); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	account, _ := accounts.Get("u1")
	if account.DisplayName != "New Name" || account.PhoneNumber != phone {
		t.Errorf("profile not applied: %+v", account)
	}
	if account.Role != models.RolePending || account.Status != models.StatusPending {
		t.Error("profile update must never touch role or status")
	}
}
