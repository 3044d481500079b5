package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for restock session lifecycle events.
const (
	TopicSessionCreated         = "restock.session.created"
	TopicSessionEmailsGenerated = "restock.session.emails_generated"
	TopicSessionSent            = "restock.session.sent"
	TopicSessionFollowUpDue     = "restock.session.followup_due"
)

// SessionCreatedEvent is published after a new session is persisted.
type SessionCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SessionStatusChangedEvent is published when a session moves through its
// lifecycle (emails generated, sent).
type SessionStatusChangedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	SessionID     string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	TotalItems    int       `json:"total_items"`
	SupplierCount int       `json:"supplier_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// SessionFollowUpDueEvent is published by the follow-up workflow when a sent
// session has waited long enough for a supplier reply.
type SessionFollowUpDueEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	SentAt     time.Time `json:"sent_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
