package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

// handleOAuthLogin redirects the browser to the identity provider's consent
// screen. The state nonce is opaque to the provider and echoed back on the
// callback.
func (s *Server) handleOAuthLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	return c.Redirect(s.provider.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// handleOAuthCallback finishes the three-legged flow: exchange the code,
// fetch the profile, and upsert a local user keyed by email. Existing users
// land on the home page; first-time users are provisioned with a null
// password and sent to the set-password page. Provider failures are terminal
// and surface as a 400 with details; nothing is retried.
func (s *Server) handleOAuthCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "code query parameter is required")
	}

	token, err := s.provider.Exchange(c.Context(), code)
	if err != nil {
		s.logger.Error(c.Context(), "oauth code exchange failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Token exchange failed",
			"details": err.Error(),
		})
	}

	profile, err := s.provider.UserInfo(c.Context(), token)
	if err != nil {
		s.logger.Error(c.Context(), "oauth profile fetch failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Failed to retrieve user information from Google",
			"details": err.Error(),
		})
	}

	existing, err := s.users.FindByEmail(c.Context(), profile.Email)
	if err != nil {
		return err
	}

	if existing != nil {
		accessToken, err := s.tokens.IssueAccessToken(existing.ID)
		if err != nil {
			return err
		}
		return c.Redirect(
			fmt.Sprintf("%s/home?token=%s&id=%d", s.cfg.FrontBaseURL, accessToken, existing.ID),
			fiber.StatusTemporaryRedirect,
		)
	}

	created, err := s.users.Insert(c.Context(), &store.User{
		Name:      profile.Name,
		Email:     profile.Email,
		Countries: store.CountryList{},
	})
	if err != nil {
		return err
	}

	accessToken, err := s.tokens.IssueAccessToken(created.ID)
	if err != nil {
		return err
	}

	s.logger.Info(c.Context(), "provisioned user from federated login", "user_id", created.ID)

	return c.Redirect(
		fmt.Sprintf("%s/new_password?token=%s&id=%d", s.cfg.FrontBaseURL, accessToken, created.ID),
		fiber.StatusTemporaryRedirect,
	)
}
