package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// KeyRevokedToken is the Redis key holding a revoked refresh-token jti.
func KeyRevokedToken(jti string) string {
	return "token:revoked:" + jti
}

// RevokeToken marks a refresh-token jti as revoked until its natural expiry.
func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return rdb.Set(ctx, KeyRevokedToken(jti), "1", ttl).Err()
}

// TokenRevoked reports whether a refresh-token jti is on the revocation list.
// Redis errors fail open: stateless verification already bounds the exposure
// to the token's natural lifetime.
func TokenRevoked(ctx context.Context, rdb *redis.Client, jti string) bool {
	if rdb == nil {
		return false
	}
	v, err := rdb.Exists(ctx, KeyRevokedToken(jti)).Result()
	return err == nil && v > 0
}
