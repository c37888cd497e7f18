package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahiavl/GlobeTrek-app/internal/auth"
	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var payload SignupRequest
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	// Lookup-then-insert: two concurrent signups with the same email can both
	// pass this check. Known limitation carried over from the original system.
	existing, err := s.users.FindByEmail(c.Context(), payload.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fiber.NewError(fiber.StatusBadRequest,
			"The user with this email already exists in the system")
	}

	user := &store.User{
		Name:      payload.Name,
		Birthday:  payload.Birthday,
		Email:     payload.Email,
		Countries: store.CountryList(payload.Countries),
	}

	if payload.Password != nil && *payload.Password != "" {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			return err
		}
		user.Password = &hash
	}

	created, err := s.users.Insert(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":        created.ID,
		"name":      created.Name,
		"birthday":  created.Birthday,
		"email":     created.Email,
		"countries": created.Countries,
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var payload Credentials
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	user, err := s.authenticator.Authenticate(c.Context(), payload.Username, payload.Password)
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Incorrect username or password")
	}

	token, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
	})
}
