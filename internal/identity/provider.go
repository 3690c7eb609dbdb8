// Package identity is the credential authority: it stores login
// credentials and per-identity custom claims, and issues and verifies
// the bearer tokens the HTTP layer authenticates with.
package identity

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
)

// Principal is a verified identity attached to a request.
type Principal struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// Provider issues and verifies bearer credentials and keeps custom
// claims for each identity.
type Provider interface {
	// CreateIdentity provisions credentials and returns the new UID.
	CreateIdentity(email, password, displayName string) (string, error)
	// IssueToken authenticates by password and returns a signed bearer
	// token plus the principal it encodes.
	IssueToken(email, password string) (string, *Principal, error)
	// VerifyCredential validates a bearer token and returns its
	// principal with the stored custom claims merged in.
	VerifyCredential(token string) (*Principal, error)
	// SetClaims merges the given custom claims into the identity's
	// stored claim set. Keys not present are left untouched.
	SetClaims(uid string, claims map[string]interface{}) error
}

// SubCode classifies a verification failure for client-side remediation
// (e.g. a silent token refresh on "expired").
func SubCode(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrIdentityNotFound):
		return "not-found"
	default:
		return "malformed"
	}
}
