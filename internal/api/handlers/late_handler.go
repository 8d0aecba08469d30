package handlers

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/gofiber/fiber/v2"
)

type LateHandler struct {
	s service.LateService
}

func NewLateHandler(s service.LateService) *LateHandler {
	return &LateHandler{s: s}
}

func (h *LateHandler) ListAccounts(c *fiber.Ctx) error {
	profileID := c.Query("profile_id")
	if profileID == "" {
		return BadRequest(c, "profile_id is required")
	}

	accounts, err := h.s.GetAccounts(c.Context(), profileID)
	if err != nil {
		return Fail(c, err, "Unable to get connected accounts")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"accounts": accounts})
}
