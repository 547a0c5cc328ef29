package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired      = errors.New("identity token expired")
	ErrTokenInvalid      = errors.New("identity token invalid")
	ErrTokenParseFailure = errors.New("identity token parse failure")
)

// IdentitySecret 先写死，后面放 config
var IdentitySecret = []byte("identity-secret")

// IdentityClaims is what the external identity provider asserts about the
// caller. The core only verifies; it never issues tokens.
type IdentityClaims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
	jwt.RegisteredClaims
}

// ExternalID returns the provider's stable identity reference.
func (c *IdentityClaims) ExternalID() string {
	return c.Subject
}

// ParseIdentityToken verifies a provider token and returns its claims.
func ParseIdentityToken(tokenStr string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(t *jwt.Token) (any, error) {
		return IdentitySecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, err
		}
	}
	if !token.Valid {
		return nil, ErrTokenParseFailure
	}
	return token.Claims.(*IdentityClaims), nil
}

// SignIdentityToken mints a provider-style token. Used by tests and local
// development; production tokens come from the identity provider.
func SignIdentityToken(externalID string, claims IdentityClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   externalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(IdentitySecret)
}
