package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps each user's active question in Redis under
// quiz:session:<userKey>. Entries are plain GET/SET; an optional TTL lets
// operators cap retention, the engine never depends on expiry.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, userKey string) (string, bool, error) {
	question, err := s.client.Get(ctx, s.key(userKey)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get %s: %w", userKey, err)
	}
	return question, true, nil
}

func (s *SessionStore) Set(ctx context.Context, userKey, question string) error {
	if err := s.client.Set(ctx, s.key(userKey), question, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set %s: %w", userKey, err)
	}
	return nil
}

func (s *SessionStore) key(userKey string) string {
	return "quiz:session:" + userKey
}
