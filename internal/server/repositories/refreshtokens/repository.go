// Package refreshtokens declares the repository for issued refresh tokens.
// Tokens are stored by their SHA-256 so a leaked table cannot be replayed.
package refreshtokens

import (
	"context"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

type Repository interface {
	// Create stores tokenHash for userID, expiring at now+validity.
	Create(ctx context.Context, userID int64, tokenHash string, validity time.Duration) error

	// Consume deletes the token and returns the row it held. It returns
	// common.ErrorNotFound when the token is unknown or already used.
	Consume(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Delete removes a token. Unknown tokens are not an error.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteByUser removes every token issued to userID.
	DeleteByUser(ctx context.Context, userID int64) error
}
