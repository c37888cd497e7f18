package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

const (
	authScheme = "Bearer"

	// userContextKey is where the middleware stashes the resolved user.
	userContextKey = "currentUser"
)

// RequireUser is the session middleware guarding protected routes. It extracts
// the bearer token from the Authorization header, verifies it, and resolves
// the subject to a stored user. Any failure ends the request with a 401
// carrying a WWW-Authenticate challenge; on success the user is attached to
// the request context for downstream handlers.
func RequireUser(tokens *TokenService, credStore CredentialStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := extractBearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c)
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			return unauthorized(c)
		}

		userID, err := claims.UserID()
		if err != nil {
			return unauthorized(c)
		}

		user, err := credStore.FindByID(c.Context(), userID)
		if err != nil || user == nil {
			return unauthorized(c)
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser, or nil when the route
// was not protected.
func CurrentUser(c *fiber.Ctx) *store.User {
	user, _ := c.Locals(userContextKey).(*store.User)
	return user
}

func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, authScheme)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Could not validate credentials",
	})
}
