// Package session keeps session-token presence in Redis. Identity never
// lives here; the auth event log decides who a token belongs to.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tallybook/tally_backend/internal/apperrors"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
)

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ portsrepo.SessionStore = (*RedisStore)(nil)

// Touch marks the token as live and slides its expiry.
func (s *RedisStore) Touch(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to touch session: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// Seen reports whether the token is currently live.
func (s *RedisStore) Seen(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("%w: failed to check session: %w", apperrors.ErrStorage, err)
	}
	return n > 0, nil
}
