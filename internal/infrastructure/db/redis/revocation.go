package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records admin ids whose tokens must be refused.
// Key format: revoked:<admin_id>
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks adminID as revoked until ttl elapses. A non-positive ttl is
// rejected since an entry that never expires would outlive every token.
func (r *RevocationList) Revoke(ctx context.Context, adminID string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("revoke %s: ttl must be positive", adminID)
	}
	if err := r.client.Set(ctx, revocationKey(adminID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke %s: %w", adminID, err)
	}
	return nil
}

// IsRevoked reports whether adminID currently has a revocation entry.
func (r *RevocationList) IsRevoked(ctx context.Context, adminID string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKey(adminID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revocationKey(adminID string) string {
	return "revoked:" + adminID
}
