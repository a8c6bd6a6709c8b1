package auth

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:jti:"

// Revoker tracks revoked token IDs (jti) in Redis until their natural
// expiry. With no Redis configured revocation is a no-op and tokens stay
// valid until they expire; logout still succeeds.
type Revoker struct {
	client *goredis.Client
}

func NewRevoker(client *goredis.Client) *Revoker {
	return &Revoker{client: client}
}

// Revoke denylists a jti for the remaining lifetime of the token.
func (r *Revoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if r.client == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether a jti has been denylisted. Redis errors fail
// open: a broken denylist must not lock every user out.
func (r *Revoker) IsRevoked(ctx context.Context, jti string) bool {
	if r.client == nil || jti == "" {
		return false
	}
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}
