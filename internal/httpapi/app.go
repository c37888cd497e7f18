// Package httpapi assembles the user-management/auth service: local signup
// and login, Google federated login, and bearer-protected user CRUD.
package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	recoverware "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nahiavl/GlobeTrek-app/internal/auth"
	"github.com/nahiavl/GlobeTrek-app/internal/config"
	"github.com/nahiavl/GlobeTrek-app/internal/logging"
	"github.com/nahiavl/GlobeTrek-app/internal/social"
	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

// Server wires the auth components behind the backend's HTTP surface.
type Server struct {
	cfg           *config.Backend
	users         store.Users
	tokens        *auth.TokenService
	authenticator *auth.Authenticator
	provider      social.Provider
	logger        logging.Logger
}

func New(
	cfg *config.Backend,
	users store.Users,
	tokens *auth.TokenService,
	authenticator *auth.Authenticator,
	provider social.Provider,
	logger logging.Logger,
) *Server {
	return &Server{
		cfg:           cfg,
		users:         users,
		tokens:        tokens,
		authenticator: authenticator,
		provider:      provider,
		logger:        logger,
	}
}

// Router builds the fiber application with all routes registered.
func (s *Server) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "GlobeTrek",
		ErrorHandler: errorHandler,
	})

	app.Use(recoverware.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.FrontBaseURL,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	app.Post("/signup", s.handleSignup)
	app.Post("/login", s.handleLogin)
	app.Get("/api/login", s.handleOAuthLogin)
	app.Get("/oauth/callback", s.handleOAuthCallback)

	user := app.Group("/user", auth.RequireUser(s.tokens, s.users))
	user.Get("/:id", s.handleFetchUser)
	user.Patch("/:id", s.handleModifyUser)
	user.Delete("/:id", s.handleDeleteUser)

	return app
}

// errorHandler renders every error as a {"detail": ...} JSON body. Unknown
// errors become a 500 exposing the error text, matching the original
// service's catch-all behavior.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}
