// Package notifier delivers templated transactional e-mail. Sends are
// best-effort by default; the few call sites where delivery failure must
// fail the operation call Send directly and propagate the error.
package notifier

import "log/slog"

// Kind selects the template a message renders with.
type Kind string

const (
	KindInvitation          Kind = "invitation"
	KindApplicationApproved Kind = "application-approved"
	KindApplicationRejected Kind = "application-rejected"
	KindAccountApproved     Kind = "account-approved"
	KindAccountRejected     Kind = "account-rejected"
	KindAdminNewUserAlert   Kind = "admin-new-user-alert"
)

// Message is one templated e-mail to one recipient.
type Message struct {
	To   string
	Kind Kind
	Data map[string]string
}

// Notifier delivers a message or reports failure.
type Notifier interface {
	Send(m Message) error
}

// BestEffort sends and swallows any failure, logging it server-side. The
// caller's operation must not depend on delivery.
func BestEffort(n Notifier, m Message) {
	if err := n.Send(m); err != nil {
		slog.Error("notification send failed", "kind", string(m.Kind), "to", m.To, "error", err)
	}
}
