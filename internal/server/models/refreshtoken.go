package models

import "time"

// RefreshToken is a stored refresh token. Token holds the SHA-256 of the
// value handed to the client.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
