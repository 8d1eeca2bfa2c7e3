package session

import (
	"context"
	"time"

	"weighttrack/internal/cache"
)

const revokedKeyPrefix = "session:revoked:"

// Store keeps a revocation list of logged-out session IDs in redis. A session
// is valid when its signed cookie verifies and its jti is not on the list, so
// an unreachable redis reads as not-revoked and never locks users out.
type Store struct {
	cache *cache.Client
}

// NewStore creates a session store over the shared cache client.
func NewStore(cache *cache.Client) *Store {
	return &Store{cache: cache}
}

// Revoke tombstones a session ID until the token would have expired anyway.
func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return s.cache.Set(ctx, revokedKeyPrefix+jti, []byte("1"), ttl)
}

// Revoked reports whether the session ID has been logged out.
func (s *Store) Revoked(ctx context.Context, jti string) bool {
	ok, err := s.cache.Exists(ctx, revokedKeyPrefix+jti)
	if err != nil {
		return false
	}
	return ok
}
