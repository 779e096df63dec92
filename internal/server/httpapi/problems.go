package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vaultkeep/vaultkeep/internal/common"
	"github.com/vaultkeep/vaultkeep/internal/server/problems"
)

// respondProblem finalizes a problem payload with the response status
// and the per-request instance URN, then writes it.
func (s *Server) respondProblem(c *fiber.Ctx, p *problems.Problem, status int) error {
	p.Status = status
	if id, ok := c.Locals(requestIDKey).(string); ok {
		p.Instance = "urn:uuid:" + id
	}
	return c.Status(status).JSON(p, problems.MediaType)
}

// accountProblem maps an account-service error to its problem payload.
// Unexpected errors yield a bare 500: internal failures are never
// described to the client.
func (s *Server) accountProblem(c *fiber.Ctx, err error) error {
	var vErr *common.ValidationError
	switch {
	case errors.As(err, &vErr):
		return s.respondProblem(c, problems.InvalidUsername(vErr.Reasons...), fiber.StatusBadRequest)
	case errors.Is(err, common.ErrorUsernameNotUnique):
		return s.respondProblem(c, problems.UsernameNotUnique(), fiber.StatusBadRequest)
	case errors.Is(err, common.ErrorCredentialLength):
		return s.respondProblem(c, problems.MasterPswdLength(), fiber.StatusBadRequest)
	case errors.Is(err, common.ErrorCredentialFormat):
		return s.respondProblem(c, problems.MasterPswdFormat(), fiber.StatusBadRequest)
	case errors.Is(err, common.ErrorAuthenticationFailed):
		return s.respondProblem(c, problems.AuthenticationFailed(), fiber.StatusBadRequest)
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}

// vaultProblem maps a vault-service error to its problem payload.
func (s *Server) vaultProblem(c *fiber.Ctx, err error) error {
	var vErr *common.ValidationError
	switch {
	case errors.As(err, &vErr):
		return s.respondProblem(c, problems.InvalidEncData(vErr.Reasons...), fiber.StatusBadRequest)
	case errors.Is(err, common.ErrorVaultEntryNotFound):
		return s.respondProblem(c, problems.VaultEntryNotFound(), fiber.StatusNotFound)
	case errors.Is(err, common.ErrorVaultEmpty):
		return s.respondProblem(c, problems.EmptyVault(), fiber.StatusNotFound)
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}
