package handlers

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := GetUserID(c)

	userInfo, err := h.s.GetUserInfo(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to get user info")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"user": userInfo})
}

func (h *UserHandler) RemoveUser(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.s.RemoveUser(c.Context(), userID); err != nil {
		return Fail(c, err, "Unable to remove user")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}
