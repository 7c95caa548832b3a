// Package cryptox wraps the hashing primitives used by the server: bcrypt
// for passwords and SHA-256 digests for opaque tokens kept at rest.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor. Tests lower it through the
// package variable to keep them fast.
var passwordCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, passwordCost)
}

// CheckPassword reports whether password matches hash. A malformed hash
// is treated as a mismatch.
func CheckPassword(hash, password []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}

// HashToken digests an opaque token (refresh tokens) so the raw value is
// never stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Fingerprint returns a short, stable digest of secret material. Password
// reset tokens embed the fingerprint of the current password hash, which
// makes them single-use: once the password changes the fingerprint no
// longer matches.
func Fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}
