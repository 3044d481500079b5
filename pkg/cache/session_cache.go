package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionCacheTTL is the time-to-live for cached session snapshots.
	SessionCacheTTL = 12 * time.Hour

	sessionCacheKeyPrefix = "restock:session"
)

// CachedSession is the denormalized session snapshot stored in Redis as JSON.
// It mirrors the aggregate's SessionValue shape so infrastructure can rebuild
// the aggregate from a cache hit without touching Postgres.
type CachedSession struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Items     json.RawMessage `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// SessionCache provides read/write operations for session cache entries.
// Keys are scoped by userID to prevent cross-user data leakage.
// Key format: "restock:session:{userID}:{sessionID}"
type SessionCache struct {
	client *RedisClient
}

// NewSessionCache creates a SessionCache backed by the given RedisClient.
func NewSessionCache(r *RedisClient) *SessionCache {
	return &SessionCache{client: r}
}

// Get retrieves a cached session by user + session ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *SessionCache) Get(ctx context.Context, userID, sessionID string) (*CachedSession, error) {
	data, err := c.client.Client().Get(ctx, c.key(userID, sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var cached CachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &cached, nil
}

// Set writes a session snapshot with the standard TTL.
func (c *SessionCache) Set(ctx context.Context, session *CachedSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	key := c.key(session.UserID, session.ID)
	if err := c.client.Client().Set(ctx, key, data, SessionCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached session. Call after any write so readers never see
// a stale snapshot longer than one round trip.
func (c *SessionCache) Delete(ctx context.Context, userID, sessionID string) error {
	if err := c.client.Client().Del(ctx, c.key(userID, sessionID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "restock:session:{userID}:{sessionID}"
func (c *SessionCache) key(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", sessionCacheKeyPrefix, userID, sessionID)
}
