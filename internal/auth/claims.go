package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAccess identifies the only token purpose this system issues.
const TokenTypeAccess = "access_token"

// TokenClaims is the claim set embedded in every issued token: the standard
// sub/iat/exp plus a type marker.
type TokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// UserID parses the subject claim back into the user id it was issued for.
func (c *TokenClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}
