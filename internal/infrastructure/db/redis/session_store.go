package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps serialized shopper sessions.
// Key format: session:<shopper_id>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore. A zero ttl keeps sessions indefinitely.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Load returns the stored session, or nil when the shopper has none yet.
func (s *SessionStore) Load(ctx context.Context, shopperID string) ([]byte, error) {
	data, err := s.client.Get(ctx, sessionKey(shopperID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", shopperID, err)
	}
	return data, nil
}

func (s *SessionStore) Save(ctx context.Context, shopperID string, data []byte) error {
	if err := s.client.Set(ctx, sessionKey(shopperID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", shopperID, err)
	}
	return nil
}

func sessionKey(shopperID string) string {
	return "session:" + shopperID
}
