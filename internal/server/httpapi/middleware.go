package httpapi

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vaultkeep/vaultkeep/internal/server/problems"
	"github.com/vaultkeep/vaultkeep/internal/server/tokens"
)

const (
	authScheme   = "Bearer"
	requestIDKey = "request_id"
)

// requestContext assigns each request an id, carried into log lines and
// into the instance field of any problem payload.
func (s *Server) requestContext(c *fiber.Ctx) error {
	id := uuid.NewString()
	c.Locals(requestIDKey, id)

	err := c.Next()

	s.logger.Info(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"request_id", id,
	)

	return err
}

// singleAuthorizationHeader returns the Authorization header value iff
// the request carries exactly one. Zero headers, several headers, or a
// single comma-joined value (several headers folded by a proxy) all
// count as absent.
func singleAuthorizationHeader(c *fiber.Ctx) (string, bool) {
	values := c.GetReqHeaders()[fiber.HeaderAuthorization]
	if len(values) != 1 {
		return "", false
	}
	header := values[0]
	if header == "" || strings.Contains(header, ",") {
		return "", false
	}
	return header, true
}

// requireAuth is the boundary check in front of every protected route.
// It walks the header through scheme, base64, and length gates before
// consulting the token store, and aborts with a distinct problem kind
// at the first failing gate. No business logic runs after a rejection.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header, ok := singleAuthorizationHeader(c)
	if !ok {
		return s.unauthorized(c, problems.AuthorizationHeader())
	}

	// Scheme keyword is case-insensitive, followed by exactly one space.
	if len(header) <= len(authScheme)+1 ||
		!strings.EqualFold(header[:len(authScheme)], authScheme) ||
		header[len(authScheme)] != ' ' {
		return s.unauthorized(c, problems.AuthorizationHeader())
	}

	token := header[len(authScheme)+1:]
	if strings.ContainsRune(token, ' ') {
		return s.unauthorized(c, problems.AuthorizationHeader())
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return s.unauthorized(c, problems.TokenFormat())
	}
	if len(raw) != tokens.TokenLength {
		return s.unauthorized(c, problems.TokenLength())
	}

	username, ok := s.tokens.Identity(token)
	if !ok {
		return s.unauthorized(c, problems.TokenExpiredOrUnknown())
	}

	c.Locals(usernameKey, username)
	return c.Next()
}

func (s *Server) unauthorized(c *fiber.Ctx, p *problems.Problem) error {
	c.Set(fiber.HeaderWWWAuthenticate, authScheme)
	return s.respondProblem(c, p, fiber.StatusUnauthorized)
}
