package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

type RedisStore struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client rueidis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	cmd := s.client.B().Set().Key(s.prefix + token).Value(userID).ExSeconds(int64(s.ttl/time.Second)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	cmd := s.client.B().Get().Key(s.prefix + token).Build()
	userID, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	cmd := s.client.B().Del().Key(s.prefix + token).Build()
	return s.client.Do(ctx, cmd).Error()
}
