// Package revocation records access tokens that were logged out before
// they expired. Entries live only as long as the token would have.
package revocation

import (
	"context"
	"time"
)

type Revoker interface {
	// Revoke marks jti as revoked for ttl. A non-positive ttl is a no-op.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Close() error
}
