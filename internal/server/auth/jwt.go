// Package auth mints and verifies the HS256 JWTs used by the API: access
// tokens carrying the user id and role, and single-purpose password reset
// tokens.
package auth

import (
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

const (
	tokenTypeAccess = "access"
	tokenTypeReset  = "password_reset"
)

// Claims is the payload of an access token. ID (jti) is unique per token
// so a single token can be revoked on logout.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
}

// ResetClaims is the payload of a password reset token. Fingerprint is
// derived from the password hash at issue time, so the token stops working
// once the password changes.
type ResetClaims struct {
	jwt.RegisteredClaims
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Fingerprint string `json:"fp"`
}

var now = time.Now

func registered(validity time.Duration) jwt.RegisteredClaims {
	t := now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(t),
		ExpiresAt: jwt.NewNumericDate(t.Add(validity)),
	}
}

func GenerateToken(userID int64, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: registered(validityDuration),
		TokenType:        tokenTypeAccess,
		UserID:           userID,
		Role:             role,
	})
	return token.SignedString(secretKey)
}

func parse(tokenString string, claims jwt.Claims, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}
	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}

// ParseToken verifies an access token. Expired tokens yield
// common.ErrTokenExpired, anything else common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func GenerateResetToken(userID int64, fingerprint string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ResetClaims{
		RegisteredClaims: registered(validityDuration),
		TokenType:        tokenTypeReset,
		UserID:           userID,
		Fingerprint:      fingerprint,
	})
	return token.SignedString(secretKey)
}

func ParseResetToken(tokenString string, secretKey []byte) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeReset {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// EncodeUID renders a user id the way reset links carry it: unpadded
// URL-safe base64 of the decimal id.
func EncodeUID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

func DecodeUID(uid string) (int64, error) {
	b, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}
