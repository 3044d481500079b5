package repositories

import (
	"context"

	"github.com/ghuser/restockhub/services/restock/domain/models"
)

// SessionRepository is the persistence interface for the RestockSession
// aggregate. The domain layer owns this interface; infrastructure implements
// it.
//
// Concurrent fetch-mutate-save cycles against the same session are
// last-write-wins; the aggregate carries no optimistic-concurrency token.
type SessionRepository interface {
	// FindByID loads a session. Returns ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id string) (*models.RestockSession, error)

	// FindByUserID retrieves all sessions owned by userID, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*models.RestockSession, error)

	// Create persists a new session.
	Create(ctx context.Context, session *models.RestockSession) error

	// Save persists the full current state of an existing session.
	Save(ctx context.Context, session *models.RestockSession) error

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// Narrow partial-update helpers for backends that patch stored state
	// instead of rewriting the whole snapshot.
	AddItem(ctx context.Context, sessionID string, item models.RestockItem) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
	UpdateName(ctx context.Context, sessionID, name string) error
	UpdateStatus(ctx context.Context, sessionID string, status models.Status) error
}

// ProductReader is the read-only lookup port for the product catalog.
type ProductReader interface {
	FindByUserID(ctx context.Context, userID string) ([]models.Product, error)
}

// SupplierReader is the read-only lookup port for the supplier catalog.
type SupplierReader interface {
	FindByUserID(ctx context.Context, userID string) ([]models.Supplier, error)
}

// IDGenerator produces stable identifiers for new sessions and for products
// or suppliers synthesized while building a session.
type IDGenerator interface {
	NewID() string
}
