package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	passwordCost = bcrypt.MinCost
}

func TestHashPassword_CheckPassword(t *testing.T) {
	hash, err := HashPassword([]byte("correct horse"))
	require.NoError(t, err)
	require.NotEqual(t, []byte("correct horse"), hash)

	require.True(t, CheckPassword(hash, []byte("correct horse")))
	require.False(t, CheckPassword(hash, []byte("wrong horse")))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"))
	require.NoError(t, err)

	require.NotEqual(t, a, b, "bcrypt hashes must be salted")
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	require.False(t, CheckPassword([]byte("not-a-hash"), []byte("x")))
	require.False(t, CheckPassword(nil, []byte("x")))
}

func TestHashToken_DeterministicHex(t *testing.T) {
	a := HashToken("refresh-1")
	b := HashToken("refresh-1")
	c := HashToken("refresh-2")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 64)
	_, err := hex.DecodeString(a)
	require.NoError(t, err)
}

func TestFingerprint_ChangesWithInput(t *testing.T) {
	require.Len(t, Fingerprint([]byte("h1")), 16)
	require.NotEqual(t, Fingerprint([]byte("h1")), Fingerprint([]byte("h2")))
}
