package handlers

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	s service.ClientService
	a service.ActivityService
}

func NewClientHandler(clients service.ClientService, activity service.ActivityService) *ClientHandler {
	return &ClientHandler{s: clients, a: activity}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var cc transfer.ClientCreation
	if err := c.BodyParser(&cc); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if cc.Name == "" {
		return BadRequest(c, "Client name is required")
	}

	id, err := h.s.Create(c.Context(), userID, &cc)
	if err != nil {
		return Fail(c, err, "Unable to create client")
	}

	client, err := h.s.ClientInfo(c.Context(), userID, id)
	if err != nil {
		return Fail(c, err, "Unable to create client")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"client": client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	userID := GetUserID(c)

	clients, err := h.s.List(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to list clients")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"clients": clients})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	client, err := h.s.ClientInfo(c.Context(), userID, int64(clientID))
	if err != nil {
		return Fail(c, err, "Unable to get client")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"client": client})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	var cu transfer.ClientUpdate
	if err := c.BodyParser(&cu); err != nil {
		return BadRequest(c, "Unable to parse json")
	}

	if err := h.s.Update(c.Context(), userID, int64(clientID), &cu); err != nil {
		return Fail(c, err, "Unable to update client")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

func (h *ClientHandler) UploadLogo(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return BadRequest(c, "No logo file provided")
	}

	logoURL, err := h.s.UploadLogo(c.Context(), userID, int64(clientID), file)
	if err != nil {
		return Fail(c, err, "Unable to upload logo")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"logo_url": logoURL})
}

func (h *ClientHandler) RemoveClient(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	if err := h.s.Remove(c.Context(), userID, int64(clientID)); err != nil {
		return Fail(c, err, "Unable to remove client")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

func (h *ClientHandler) UnreadCounts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	counts, err := h.a.UnreadCounts(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to compute unread counts")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"unreadCounts": counts})
}

func (h *ClientHandler) MarkViewed(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	if err := h.a.MarkViewed(c.Context(), userID, int64(clientID)); err != nil {
		return Fail(c, err, "Unable to mark client viewed")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}
