package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartwash/internal/cache"
	apperrors "smartwash/internal/errors"
)

const sessionKeyPrefix = "session:"

// Identity is the record a session resolves to: who is logged in and
// with which role.
type Identity struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}

// Store maps opaque session ids to identity records.
type Store interface {
	Save(ctx context.Context, sessionID string, ident Identity, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*Identity, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps sessions in redis with a TTL.
type RedisStore struct {
	cache *cache.Client
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a redis-backed session store.
func NewRedisStore(cache *cache.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

// Save stores an identity record under the session id. Redis is the
// authoritative session store, so a failed write is reported, not
// swallowed: a login must not hand out a cookie that can never resolve.
func (s *RedisStore) Save(ctx context.Context, sessionID string, ident Identity, ttl time.Duration) error {
	payload, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := s.cache.Put(ctx, sessionKeyPrefix+sessionID, payload, ttl); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Get resolves a session id to its identity record. A missing or expired
// session yields ErrSessionNotFound, never a hard failure.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Identity, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil || data == nil {
		return nil, apperrors.ErrSessionNotFound
	}

	var ident Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	return &ident, nil
}

// Delete erases a session.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
