package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	tok, err := SignIdentityToken("ext-42", IdentityClaims{
		Email:  "ada@lovelace.dev",
		Name:   "Ada",
		Handle: "ada",
	}, time.Hour)
	require.NoError(t, err)

	claims, err := ParseIdentityToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ext-42", claims.ExternalID())
	assert.Equal(t, "ada@lovelace.dev", claims.Email)
	assert.Equal(t, "ada", claims.Handle)
}

func TestIdentityTokenExpired(t *testing.T) {
	tok, err := SignIdentityToken("ext-42", IdentityClaims{}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseIdentityToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestIdentityTokenGarbage(t *testing.T) {
	_, err := ParseIdentityToken("not-a-jwt")
	require.Error(t, err)
}
