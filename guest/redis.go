package guest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"ramani-storefront/models"
	"ramani-storefront/services"
)

const keyPrefix = "guest:"

// RedisStore keeps guest sessions as JSON values that expire after ttl of
// inactivity. Every write refreshes the expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.GuestSession, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, services.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get guest session")
	}

	var session models.GuestSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "decode guest session")
	}
	return &session, nil
}

func (s *RedisStore) Set(ctx context.Context, session *models.GuestSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "encode guest session")
	}
	return errors.Wrap(s.client.Set(ctx, keyPrefix+session.ID, raw, s.ttl).Err(), "set guest session")
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return errors.Wrap(s.client.Del(ctx, keyPrefix+id).Err(), "clear guest session")
}
