package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// forwardToBackend proxies the request as-is to the auth backend.
func (s *Server) forwardToBackend(c *fiber.Ctx) error {
	return s.forward(c, s.client, s.cfg.BackBaseURL+c.OriginalURL())
}

// forwardToAPI proxies the request as-is to the itinerary/places API.
func (s *Server) forwardToAPI(c *fiber.Ctx) error {
	return s.forward(c, s.client, s.cfg.APIBaseURL+c.OriginalURL())
}

// forward performs one upstream round trip and copies status and body back
// verbatim. A transport failure surfaces as 500 with the error text.
func (s *Server) forward(c *fiber.Ctx, client *http.Client, url string) error {
	status, body, header, err := s.roundTrip(c, client, url)
	if err != nil {
		return err
	}

	if ct := header.Get(fiber.HeaderContentType); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	return c.Status(status).Send(body)
}

func (s *Server) roundTrip(c *fiber.Ctx, client *http.Client, url string) (int, []byte, http.Header, error) {
	var reqBody io.Reader
	if len(c.Body()) > 0 {
		reqBody = bytes.NewReader(c.Body())
	}

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), url, reqBody)
	if err != nil {
		return 0, nil, nil, err
	}

	if ct := c.Get(fiber.HeaderContentType); ct != "" {
		req.Header.Set(fiber.HeaderContentType, ct)
	} else if reqBody != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authz := c.Get(fiber.HeaderAuthorization); authz != "" {
		req.Header.Set(fiber.HeaderAuthorization, authz)
	}

	resp, err := client.Do(req)
	if err != nil {
		s.logger.Error(c.Context(), "upstream call failed", "url", url, "error", err)
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, err
	}

	return resp.StatusCode, body, resp.Header, nil
}

// handleOAuthLoginRedirect asks the backend for the identity-provider consent
// URL without following the redirect, and hands the location to the browser
// client as JSON.
func (s *Server) handleOAuthLoginRedirect(c *fiber.Ctx) error {
	status, body, header, err := s.roundTrip(c, s.noRedirect, s.cfg.BackBaseURL+"/api/login")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError,
			"Error calling backend login API: "+err.Error())
	}

	if status == fiber.StatusTemporaryRedirect || status == fiber.StatusFound {
		return c.JSON(fiber.Map{"redirect_url": header.Get(fiber.HeaderLocation)})
	}

	if ct := header.Get(fiber.HeaderContentType); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	return c.Status(status).Send(body)
}

// handleItinerariesByUser wraps the upstream list in an envelope the frontend
// expects. This call waits on the itinerary API's heavier queries, so it uses
// the long-timeout client.
func (s *Server) handleItinerariesByUser(c *fiber.Ctx) error {
	status, body, _, err := s.roundTrip(c, s.longClient, s.cfg.APIBaseURL+c.OriginalURL())
	if err != nil {
		return err
	}

	if !json.Valid(body) {
		return fiber.NewError(fiber.StatusInternalServerError, "Invalid response format")
	}

	return c.Status(status).JSON(fiber.Map{"itineraries": json.RawMessage(body)})
}

// handlePersonalizeItinerary forwards a generation request that can take
// minutes and wraps the result.
func (s *Server) handlePersonalizeItinerary(c *fiber.Ctx) error {
	status, body, _, err := s.roundTrip(c, s.longClient, s.cfg.APIBaseURL+c.OriginalURL())
	if err != nil {
		return err
	}

	if !json.Valid(body) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"error": "Invalid JSON response"})
	}

	return c.Status(status).JSON(fiber.Map{"data": json.RawMessage(body)})
}
