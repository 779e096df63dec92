package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vaultkeep/vaultkeep/internal/server/problems"
)

// vaultEntryDto is the JSON form of a vault entry. EncData marshals as
// base64, matching the wire contract.
type vaultEntryDto struct {
	ID      int64  `json:"id"`
	EncData []byte `json:"encData"`
}

func (s *Server) authUsername(c *fiber.Ctx) string {
	username, _ := c.Locals(usernameKey).(string)
	return username
}

func (s *Server) listVault(c *fiber.Ctx) error {
	entries, err := s.vault.List(c.UserContext(), s.authUsername(c))
	if err != nil {
		return s.vaultProblem(c, err)
	}

	dtos := make([]vaultEntryDto, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, vaultEntryDto{ID: e.ID, EncData: e.EncData})
	}
	return c.JSON(dtos)
}

func (s *Server) createVaultEntry(c *fiber.Ctx) error {
	// The body buffer is reused by fiber after the handler returns.
	encData := append([]byte(nil), c.Body()...)

	entry, err := s.vault.Create(c.UserContext(), s.authUsername(c), encData)
	if err != nil {
		return s.vaultProblem(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("%s/%d", c.Path(), entry.ID))
	return c.SendStatus(fiber.StatusCreated)
}

func (s *Server) getVaultEntry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return s.respondProblem(c, problems.VaultEntryNotFound(), fiber.StatusNotFound)
	}

	entry, err := s.vault.Get(c.UserContext(), s.authUsername(c), int64(id))
	if err != nil {
		return s.vaultProblem(c, err)
	}

	return c.JSON(vaultEntryDto{ID: entry.ID, EncData: entry.EncData})
}

func (s *Server) updateVaultEntry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return s.respondProblem(c, problems.VaultEntryNotFound(), fiber.StatusNotFound)
	}

	encData := append([]byte(nil), c.Body()...)

	if err := s.vault.Update(c.UserContext(), s.authUsername(c), int64(id), encData); err != nil {
		return s.vaultProblem(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteVaultEntry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return s.respondProblem(c, problems.VaultEntryNotFound(), fiber.StatusNotFound)
	}

	if err := s.vault.Delete(c.UserContext(), s.authUsername(c), int64(id)); err != nil {
		return s.vaultProblem(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteVault(c *fiber.Ctx) error {
	if err := s.vault.DeleteAll(c.UserContext(), s.authUsername(c)); err != nil {
		return s.vaultProblem(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
