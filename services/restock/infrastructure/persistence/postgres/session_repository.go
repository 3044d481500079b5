package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/restockhub/pkg/database"
	"github.com/ghuser/restockhub/pkg/events"
	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
	domainevents "github.com/ghuser/restockhub/services/restock/domain/events"
	"github.com/ghuser/restockhub/services/restock/domain/models"
)

// SessionRepository implements repositories.SessionRepository against
// PostgreSQL. Line items are stored as a JSONB column on the session row so
// the snapshot round-trips in one read.
//
// Writes are last-write-wins: two concurrent fetch-mutate-save cycles against
// the same session can lose an update. The schema has no version column yet.
type SessionRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSessionRepository returns a SessionRepository backed by the given pool
// and event bus. The bus publishes lifecycle events in the same transaction
// as the write (outbox pattern); pass nil to disable publishing.
func NewSessionRepository(db *database.Database, bus *events.EventBus) *SessionRepository {
	return &SessionRepository{db: db, bus: bus}
}

// FindByID loads a session and rebuilds the aggregate from its snapshot.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.RestockSession, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, user_id, name, status, items, created_at, updated_at
		FROM restock_sessions
		WHERE id = $1`, id)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restockdomain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return session, nil
}

// FindByUserID retrieves all sessions owned by userID, newest first.
func (r *SessionRepository) FindByUserID(ctx context.Context, userID string) ([]*models.RestockSession, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, user_id, name, status, items, created_at, updated_at
		FROM restock_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.RestockSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// Create persists a new session and publishes SessionCreatedEvent within the
// same transaction. Returns ErrSessionExists on primary-key violations.
func (r *SessionRepository) Create(ctx context.Context, session *models.RestockSession) error {
	v := session.Snapshot()
	items, err := json.Marshal(v.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO restock_sessions (id, user_id, name, status, items, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			v.ID, v.UserID, v.Name, v.Status, items, v.CreatedAt, v.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return restockdomain.ErrSessionExists
			}
			return fmt.Errorf("insert session: %w", err)
		}

		if r.bus != nil {
			event := domainevents.SessionCreatedEvent{
				EventID:    uuid.New(),
				Version:    1,
				SessionID:  v.ID,
				UserID:     v.UserID,
				Name:       v.Name,
				OccurredAt: v.CreatedAt,
			}
			if err := r.publish(tx, domainevents.TopicSessionCreated, event, event.EventID); err != nil {
				return fmt.Errorf("publish session created: %w", err)
			}
		}
		return nil
	})
}

// Save rewrites the full stored snapshot of an existing session.
func (r *SessionRepository) Save(ctx context.Context, session *models.RestockSession) error {
	v := session.Snapshot()
	items, err := json.Marshal(v.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE restock_sessions
		SET name = $2, status = $3, items = $4, updated_at = $5
		WHERE id = $1`,
		v.ID, v.Name, v.Status, items, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return requireRow(res)
}

// Delete removes a session by ID.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM restock_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return requireRow(res)
}

// AddItem appends one item to the stored JSONB array.
func (r *SessionRepository) AddItem(ctx context.Context, sessionID string, item models.RestockItem) error {
	payload, err := json.Marshal([]models.RestockItem{item})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE restock_sessions
		SET items = items || $2::jsonb, updated_at = now()
		WHERE id = $1`, sessionID, payload)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	return requireRow(res)
}

// RemoveItem drops the item for productID from the stored JSONB array.
func (r *SessionRepository) RemoveItem(ctx context.Context, sessionID, productID string) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE restock_sessions
		SET items = COALESCE(
			(SELECT jsonb_agg(e) FROM jsonb_array_elements(items) AS e WHERE e->>'productId' <> $2),
			'[]'::jsonb
		), updated_at = now()
		WHERE id = $1`, sessionID, productID)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return requireRow(res)
}

// UpdateName sets the stored session name.
func (r *SessionRepository) UpdateName(ctx context.Context, sessionID, name string) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE restock_sessions
		SET name = $2, updated_at = now()
		WHERE id = $1`, sessionID, name)
	if err != nil {
		return fmt.Errorf("update name: %w", err)
	}
	return requireRow(res)
}

// UpdateStatus sets the stored status and publishes a status-changed event on
// the matching topic within the same transaction.
func (r *SessionRepository) UpdateStatus(ctx context.Context, sessionID string, status models.Status) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE restock_sessions
			SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING user_id, items`, sessionID, status.String())

		var userID string
		var rawItems []byte
		if err := row.Scan(&userID, &rawItems); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return restockdomain.ErrSessionNotFound
			}
			return fmt.Errorf("update status: %w", err)
		}

		if r.bus == nil {
			return nil
		}

		var items []models.RestockItem
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return fmt.Errorf("unmarshal items: %w", err)
		}
		totalItems := 0
		suppliers := map[string]struct{}{}
		for _, item := range items {
			totalItems += item.Quantity
			suppliers[item.SupplierID] = struct{}{}
		}

		topic := statusTopic(status)
		if topic == "" {
			return nil
		}
		event := domainevents.SessionStatusChangedEvent{
			EventID:       uuid.New(),
			Version:       1,
			SessionID:     sessionID,
			UserID:        userID,
			Status:        status.String(),
			TotalItems:    totalItems,
			SupplierCount: len(suppliers),
			OccurredAt:    time.Now().UTC(),
		}
		if err := r.publish(tx, topic, event, event.EventID); err != nil {
			return fmt.Errorf("publish status change: %w", err)
		}
		return nil
	})
}

func (r *SessionRepository) publish(tx *sql.Tx, topic string, event any, eventID uuid.UUID) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

func statusTopic(status models.Status) string {
	switch status {
	case models.StatusEmailGenerated:
		return domainevents.TopicSessionEmailsGenerated
	case models.StatusSent:
		return domainevents.TopicSessionSent
	default:
		return ""
	}
}

// requireRow converts a zero-row update into ErrSessionNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return restockdomain.ErrSessionNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession maps a session row to the domain aggregate, re-validating the
// stored snapshot through SessionFromValue.
func scanSession(row rowScanner) (*models.RestockSession, error) {
	var (
		v         models.SessionValue
		rawItems  []byte
		updatedAt sql.NullTime
	)
	if err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Status, &rawItems, &v.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawItems, &v.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if updatedAt.Valid {
		at := updatedAt.Time
		v.UpdatedAt = &at
	}
	return models.SessionFromValue(v)
}
