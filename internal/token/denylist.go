package token

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "aegis:revoked:"

// Denylist records token ids revoked before their natural expiry, the
// one out-of-band check layered on the otherwise stateless design.
// Entries live exactly as long as the token would have, so the set
// stays bounded by the TTL.
type Denylist struct {
	client *redis.Client
}

// NewDenylist wraps a Redis client. A nil client disables revocation
// checks entirely.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks a token id unusable until the given expiry.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if d == nil || d.client == nil || jti == "" {
		return nil
	}
	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+jti, "1", remaining).Err()
}

// IsRevoked reports whether the token id was revoked. Lookup failures
// propagate; a broken denylist must never silently allow.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if d == nil || d.client == nil || jti == "" {
		return false, nil
	}
	n, err := d.client.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
