package models

import (
	"fmt"

	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
)

// Status is the lifecycle state of a restock session. Transitions are
// monotonic and one-directional: draft → email_generated → sent.
type Status string

const (
	// StatusDraft is the initial state; items may still be added.
	StatusDraft Status = "draft"

	// StatusEmailGenerated means supplier emails have been generated but not sent.
	StatusEmailGenerated Status = "email_generated"

	// StatusSent is the terminal state; the order has been dispatched.
	StatusSent Status = "sent"
)

// ParseStatus converts a stored string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusEmailGenerated, StatusSent:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", restockdomain.ErrValidation, s)
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is a legal successor of s.
// No skipping, no reverse.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusEmailGenerated
	case StatusEmailGenerated:
		return next == StatusSent
	default:
		return false
	}
}
