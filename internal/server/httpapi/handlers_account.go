package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vaultkeep/vaultkeep/internal/server/problems"
)

// authRequest is the body of account-creation and login requests. The
// master password secret travels as base64 text decoding to exactly
// 32 raw bytes.
type authRequest struct {
	Username   string `json:"username"`
	MasterPswd string `json:"masterPswd"`
}

// tokenResponse is the login success payload. ExpirationMs is absolute
// epoch milliseconds.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpirationMs int64  `json:"expiration_ms"`
}

func (s *Server) createAccount(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondProblem(c, problems.InvalidBody(), fiber.StatusBadRequest)
	}

	if err := s.accounts.Register(c.UserContext(), req.Username, req.MasterPswd); err != nil {
		return s.accountProblem(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondProblem(c, problems.InvalidBody(), fiber.StatusBadRequest)
	}

	grant, err := s.accounts.Login(c.UserContext(), req.Username, req.MasterPswd)
	if err != nil {
		return s.accountProblem(c, err)
	}

	return c.JSON(tokenResponse{
		AccessToken:  grant.Token,
		TokenType:    "bearer",
		ExpirationMs: grant.ExpiresAt.UnixMilli(),
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	username, ok := c.Locals(usernameKey).(string)
	if !ok {
		// requireAuth always sets the username before this handler runs.
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	s.accounts.Logout(c.UserContext(), username)
	return c.SendStatus(fiber.StatusOK)
}
