// Package gateway implements the edge service: every endpoint is a pure
// forward to either the auth backend or the itinerary/places API, with the
// caller's bearer token re-attached and the upstream status and body
// propagated verbatim.
package gateway

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	recoverware "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nahiavl/GlobeTrek-app/internal/config"
	"github.com/nahiavl/GlobeTrek-app/internal/logging"
)

// longTimeout bounds the itinerary calls that wait on generated content.
const longTimeout = 5 * time.Minute

// Server holds the upstream clients. No retries: every upstream failure is
// surfaced to the caller immediately.
type Server struct {
	cfg    *config.Gateway
	logger logging.Logger

	client     *http.Client
	longClient *http.Client
	noRedirect *http.Client
}

func New(cfg *config.Gateway, logger logging.Logger) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		client:     &http.Client{Timeout: 30 * time.Second},
		longClient: &http.Client{Timeout: longTimeout},
		noRedirect: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Router builds the fiber application with the full proxy surface.
func (s *Server) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Gateway to API",
		ErrorHandler: errorHandler,
	})

	app.Use(recoverware.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/api/login", s.handleOAuthLoginRedirect)
	app.Post("/signup", s.forwardToBackend)
	app.Post("/login", s.forwardToBackend)

	user := app.Group("/user", requireBearer)
	user.Get("/:id", s.forwardToBackend)
	user.Patch("/:id", s.forwardToBackend)
	user.Delete("/:id", s.forwardToBackend)

	itineraries := app.Group("/itineraries", requireBearer)
	itineraries.Post("/create", s.forwardToAPI)
	itineraries.Get("/get/:id", s.forwardToAPI)
	itineraries.Get("/byUser/:id", s.handleItinerariesByUser)
	itineraries.Patch("/modify/:id", s.forwardToAPI)
	itineraries.Delete("/delete/:id", s.forwardToAPI)
	itineraries.Delete("/deleteByOwner/:owner", s.forwardToAPI)
	itineraries.Post("/personalize/:city/:country", s.handlePersonalizeItinerary)

	days := app.Group("/itinerariesDays", requireBearer)
	days.Patch("/add/:id", s.forwardToAPI)
	days.Delete("/delete/:id/days/:index", s.forwardToAPI)

	app.Get("/place/info/:city/:country", requireBearer, s.forwardToAPI)

	destination := app.Group("/destination", requireBearer)
	destination.Post("/", s.forwardToAPI)
	destination.Get("/:id", s.forwardToAPI)
	destination.Delete("/:id", s.forwardToAPI)

	return app
}

// requireBearer rejects requests without a bearer token before any upstream
// call. Token verification itself happens at the backend; the gateway only
// checks presence.
func requireBearer(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Not authenticated",
		})
	}
	return c.Next()
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}
