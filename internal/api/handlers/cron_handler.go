package handlers

import (
	"strings"

	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/gofiber/fiber/v2"
)

// CronHandler exposes scheduled maintenance over HTTP for external cron
// runners. Requests must carry the shared cron secret.
type CronHandler struct {
	s      service.SubscriptionService
	secret string
}

func NewCronHandler(s service.SubscriptionService, secret string) *CronHandler {
	return &CronHandler{s: s, secret: secret}
}

func (h *CronHandler) ExpireTrials(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if h.secret == "" || token != h.secret {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	expired, err := h.s.ExpireTrials(c.Context())
	if err != nil {
		return Fail(c, err, "Unable to expire trials")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"expired": expired})
}
