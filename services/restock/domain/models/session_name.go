package models

import (
	"strings"
	"time"
)

// SessionName is a value object representing a valid session name.
// Encapsulates validation rules: 1 <= len(trimmed name) <= 255.
// The trimmed value is the stored value.
type SessionName string

const maxSessionNameLength = 255

// NewSessionName trims s and constructs a valid SessionName, or returns an
// error if constraints are violated.
func NewSessionName(s string) (SessionName, error) {
	if err := requireNonEmpty(s, "Session name"); err != nil {
		return "", err
	}
	if err := requireLengthAtMost(s, maxSessionNameLength, "Session name"); err != nil {
		return "", err
	}
	return SessionName(strings.TrimSpace(s)), nil
}

// DefaultSessionName returns the fallback name used when a session is created
// without one: "Restock Session <ISO-date>".
func DefaultSessionName(at time.Time) SessionName {
	return SessionName("Restock Session " + at.Format("2006-01-02"))
}

// String returns the underlying string value.
func (n SessionName) String() string {
	return string(n)
}
