package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prismedia/news-server/pkg/database"
)

// OAuthStateStore keeps the short-lived state nonces of in-flight OAuth2
// authorization flows. A state is single-use: consuming it deletes it, so a
// replayed callback fails the CSRF check.
type OAuthStateStore struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewOAuthStateStore creates a Redis-backed state store
func NewOAuthStateStore(redis *database.Redis, ttl time.Duration) *OAuthStateStore {
	return &OAuthStateStore{redis: redis, ttl: ttl}
}

// Store records a state nonce for the duration of the flow
func (s *OAuthStateStore) Store(ctx context.Context, state string) error {
	key := s.key(state)
	if err := s.redis.Client.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

// Consume atomically checks and deletes a state nonce. It returns false for
// an unknown, expired, or already-consumed state.
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	key := s.key(state)
	if err := s.redis.Client.GetDel(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}

	return true, nil
}

func (s *OAuthStateStore) key(state string) string {
	return "oauth2:state:" + state
}
