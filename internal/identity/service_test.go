package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation happens entirely before any identity lookup, so
// these paths are exercised without a database.

func signedToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "uid-1",
		"email": "u@example.com",
		"iat":   time.Now().Unix(),
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestVerifyCredentialGarbageIsMalformed(t *testing.T) {
	svc := NewService(nil, "test-secret", time.Hour)

	if _, err := svc.VerifyCredential("not-a-jwt"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestVerifyCredentialExpired(t *testing.T) {
	svc := NewService(nil, "test-secret", time.Hour)
	token := signedToken(t, "test-secret", time.Now().Add(-time.Minute))

	if _, err := svc.VerifyCredential(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyCredentialWrongSecret(t *testing.T) {
	svc := NewService(nil, "test-secret", time.Hour)
	token := signedToken(t, "other-secret", time.Now().Add(time.Hour))

	if _, err := svc.VerifyCredential(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestCreateIdentityRequiresStrongEnoughPassword(t *testing.T) {
	svc := NewService(nil, "test-secret", time.Hour)

	if _, err := svc.CreateIdentity("u@example.com", "short", "U"); err == nil {
		t.Fatal("expected rejection of a short password")
	}
	if _, err := svc.CreateIdentity("", "longenough", "U"); err == nil {
		t.Fatal("expected rejection of a missing email")
	}
}

func TestSubCodeClassification(t *testing.T) {
	cases := map[error]string{
		ErrTokenExpired:     "expired",
		ErrIdentityNotFound: "not-found",
		ErrTokenMalformed:   "malformed",
		errors.New("anything else"): "malformed",
	}
	for err, want := range cases {
		if got := SubCode(err); got != want {
			t.Errorf("SubCode(%v) = %q, want %q", err, got, want)
		}
	}
}
