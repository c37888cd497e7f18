package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed, time-limited access tokens. There
// is no refresh mechanism and no revocation: a token stays valid for its full
// lifetime once issued, even after its subject is deleted.
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
}

// NewTokenService creates a TokenService signing with the given symmetric key.
func NewTokenService(signingKey []byte, lifetime time.Duration) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		lifetime:   lifetime,
	}
}

// IssueAccessToken issues an access token for the given user with the
// configured lifetime.
func (ts *TokenService) IssueAccessToken(subjectID int64) (string, error) {
	return ts.Issue(subjectID, TokenTypeAccess, ts.lifetime)
}

// Issue signs a token of the given type whose expiry is issued-at plus lifetime.
func (ts *TokenService) Issue(subjectID int64, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.signingKey)
}

// Verify parses and validates a token string. It fails with ErrTokenExpired
// when the expiry has passed and ErrTokenInvalid for bad signatures, wrong
// signing methods, or missing required claims.
func (ts *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
