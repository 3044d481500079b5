package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgcache "github.com/ghuser/restockhub/pkg/cache"
	"github.com/ghuser/restockhub/pkg/workflows"
	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
	"github.com/ghuser/restockhub/services/restock/domain/models"
	"github.com/ghuser/restockhub/services/restock/domain/repositories"
	domainsvcs "github.com/ghuser/restockhub/services/restock/domain/services"
)

// SessionService orchestrates the fetch → mutate → save cycle around the
// immutable RestockSession aggregate. Event publishing is handled by the
// repository layer (outbox pattern). Reads are served from Redis cache when
// available.
type SessionService struct {
	repo      repositories.SessionRepository
	products  repositories.ProductReader
	suppliers repositories.SupplierReader
	ids       repositories.IDGenerator
	cache     *pkgcache.SessionCache

	temporal      *workflows.TemporalClient
	followUpDelay time.Duration
}

// NewSessionService returns a SessionService wired with the given ports.
func NewSessionService(
	repo repositories.SessionRepository,
	products repositories.ProductReader,
	suppliers repositories.SupplierReader,
	ids repositories.IDGenerator,
	sessionCache *pkgcache.SessionCache,
) *SessionService {
	return &SessionService{
		repo:      repo,
		products:  products,
		suppliers: suppliers,
		ids:       ids,
		cache:     sessionCache,
	}
}

// WithFollowUps enables the Temporal follow-up workflow for sent sessions.
func (s *SessionService) WithFollowUps(tc *workflows.TemporalClient, delay time.Duration) *SessionService {
	s.temporal = tc
	s.followUpDelay = delay
	return s
}

// Create builds and persists a new draft session owned by userID.
// The repository publishes SessionCreatedEvent.
func (s *SessionService) Create(ctx context.Context, userID, name string) (*models.RestockSession, error) {
	session, err := models.CreateSession(models.CreateSessionInput{
		ID:     s.ids.NewID(),
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetByID retrieves a session using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// Sessions owned by another user are reported as not found.
func (s *SessionService) GetByID(ctx context.Context, userID, sessionID string) (*models.RestockSession, error) {
	if s.cache != nil {
		// Misses and cache errors both fall through to Postgres.
		if cached, err := s.cache.Get(ctx, userID, sessionID); err == nil {
			if session, err := sessionFromCache(cached); err == nil {
				return session, nil
			}
		}
	}

	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), cachedFromSession(session))
		}()
	}
	return session, nil
}

// List returns all of the user's sessions, newest first.
func (s *SessionService) List(ctx context.Context, userID string) ([]*models.RestockSession, error) {
	sessions, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// AddItem resolves the request against the user's catalog and appends the
// resulting item to the session.
func (s *SessionService) AddItem(ctx context.Context, userID, sessionID string, req domainsvcs.ItemRequest) (*models.RestockSession, models.RestockItem, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, models.RestockItem{}, err
	}

	products, err := s.products.FindByUserID(ctx, userID)
	if err != nil {
		return nil, models.RestockItem{}, fmt.Errorf("load products: %w", err)
	}
	suppliers, err := s.suppliers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, models.RestockItem{}, fmt.Errorf("load suppliers: %w", err)
	}

	result, err := domainsvcs.AddItemToSession(session, req, products, suppliers, s.ids)
	if err != nil {
		return nil, models.RestockItem{}, err
	}

	if err := s.repo.Save(ctx, result.Session); err != nil {
		return nil, models.RestockItem{}, fmt.Errorf("save session: %w", err)
	}
	s.invalidate(userID, sessionID)
	return result.Session, result.Item, nil
}

// UpdateItem merges a partial update into one line item.
func (s *SessionService) UpdateItem(ctx context.Context, userID, sessionID, productID string, patch models.ItemPatch) (*models.RestockSession, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.RestockSession) (*models.RestockSession, error) {
		return session.UpdateItem(productID, patch)
	})
}

// RemoveItem drops one line item; removing an absent product is a no-op.
func (s *SessionService) RemoveItem(ctx context.Context, userID, sessionID, productID string) (*models.RestockSession, error) {
	return s.mutate(ctx, userID, sessionID, func(session *models.RestockSession) (*models.RestockSession, error) {
		return session.RemoveItem(productID)
	})
}

// Rename sets a new session name.
func (s *SessionService) Rename(ctx context.Context, userID, sessionID, name string) (*models.RestockSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := session.Rename(name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, sessionID, updated.Name()); err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}
	s.invalidate(userID, sessionID)
	return updated, nil
}

// GenerateEmails moves the session into the email_generated state.
// The repository publishes the matching lifecycle event transactionally.
func (s *SessionService) GenerateEmails(ctx context.Context, userID, sessionID string) (*models.RestockSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := session.GenerateEmails()
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, sessionID, updated.Status()); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	s.invalidate(userID, sessionID)
	return updated, nil
}

// MarkSent moves the session into its terminal sent state and, when Temporal
// is configured, schedules a supplier follow-up reminder.
func (s *SessionService) MarkSent(ctx context.Context, userID, sessionID string) (*models.RestockSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := session.MarkSent()
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, sessionID, updated.Status()); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	s.invalidate(userID, sessionID)

	if s.temporal != nil {
		sentAt := time.Now().UTC()
		if at := updated.UpdatedAt(); at != nil {
			sentAt = *at
		}
		if err := s.temporal.StartFollowUp(ctx, workflows.FollowUpInput{
			SessionID: sessionID,
			UserID:    userID,
			SentAt:    sentAt,
			Delay:     s.followUpDelay,
		}); err != nil {
			// The send already succeeded; losing the reminder is acceptable.
			return updated, nil
		}
	}
	return updated, nil
}

// Delete removes a session owned by userID.
func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) error {
	if _, err := s.loadOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.invalidate(userID, sessionID)
	return nil
}

// Summary projects the session's derived counters and capabilities.
func (s *SessionService) Summary(ctx context.Context, userID, sessionID string) (domainsvcs.Summary, error) {
	session, err := s.GetByID(ctx, userID, sessionID)
	if err != nil {
		return domainsvcs.Summary{}, err
	}
	return domainsvcs.CalculateSummary(session), nil
}

// mutate runs one aggregate mutation and persists the full snapshot.
func (s *SessionService) mutate(
	ctx context.Context,
	userID, sessionID string,
	fn func(*models.RestockSession) (*models.RestockSession, error),
) (*models.RestockSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := fn(session)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.invalidate(userID, sessionID)
	return updated, nil
}

// loadOwned fetches a session and hides other users' sessions behind
// ErrSessionNotFound.
func (s *SessionService) loadOwned(ctx context.Context, userID, sessionID string) (*models.RestockSession, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID() != userID {
		return nil, restockdomain.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) invalidate(userID, sessionID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(context.Background(), userID, sessionID)
}

// sessionFromCache rebuilds the aggregate from a cached snapshot.
func sessionFromCache(cached *pkgcache.CachedSession) (*models.RestockSession, error) {
	var items []models.RestockItem
	if len(cached.Items) > 0 {
		if err := json.Unmarshal(cached.Items, &items); err != nil {
			return nil, fmt.Errorf("decode cached items: %w", err)
		}
	}
	return models.SessionFromValue(models.SessionValue{
		ID:        cached.ID,
		UserID:    cached.UserID,
		Name:      cached.Name,
		Status:    cached.Status,
		Items:     items,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	})
}

func cachedFromSession(session *models.RestockSession) *pkgcache.CachedSession {
	v := session.Snapshot()
	items, err := json.Marshal(v.Items)
	if err != nil {
		items = []byte("[]")
	}
	return &pkgcache.CachedSession{
		ID:        v.ID,
		UserID:    v.UserID,
		Name:      v.Name,
		Status:    v.Status,
		Items:     items,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
