package handlers

import (
	"strconv"

	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	s service.UploadService
}

func NewUploadHandler(s service.UploadService) *UploadHandler {
	return &UploadHandler{s: s}
}

func (h *UploadHandler) CreateUpload(c *fiber.Ctx) error {
	userID := GetUserID(c)

	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return BadRequest(c, "No file provided")
	}
	notes := c.FormValue("notes")

	upload, err := h.s.CreateFromAgency(c.Context(), userID, int64(clientID), file, notes)
	if err != nil {
		return Fail(c, err, "Unable to save upload")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"upload": upload})
}

func (h *UploadHandler) ListUploads(c *fiber.Ctx) error {
	userID := GetUserID(c)

	clientID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid client id")
	}

	uploads, err := h.s.List(c.Context(), userID, int64(clientID))
	if err != nil {
		return Fail(c, err, "Unable to list uploads")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"uploads": uploads})
}

func (h *UploadHandler) MarkReviewed(c *fiber.Ctx) error {
	userID := GetUserID(c)

	uploadID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return BadRequest(c, "Invalid upload id")
	}

	var un transfer.UploadNotes
	if err := c.BodyParser(&un); err != nil {
		return BadRequest(c, "Unable to parse json")
	}

	if err := h.s.MarkReviewed(c.Context(), userID, uploadID, un.Notes); err != nil {
		return Fail(c, err, "Unable to mark upload reviewed")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}
