package handlers

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

// PortalHandler serves the client-facing portal. Routes under /portal are
// authenticated by approval-session or portal tokens, not by the agency JWT.
type PortalHandler struct {
	s  service.ApprovalService
	up service.UploadService
}

func NewPortalHandler(approvals service.ApprovalService, uploads service.UploadService) *PortalHandler {
	return &PortalHandler{s: approvals, up: uploads}
}

// CreateSession is agency-side: it mints a shareable review link for one of
// the caller's clients.
func (h *PortalHandler) CreateSession(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var sc transfer.SessionCreation
	if err := c.BodyParser(&sc); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if sc.ClientID == 0 {
		return BadRequest(c, "client_id is required")
	}

	session, err := h.s.CreateSession(c.Context(), userID, sc.ClientID)
	if err != nil {
		return Fail(c, err, "Unable to create approval session")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"session": session})
}

func (h *PortalHandler) ListPendingPosts(c *fiber.Ctx) error {
	token := c.Params("token")

	posts, err := h.s.PortalPosts(c.Context(), token)
	if err != nil {
		return Fail(c, err, "Unable to list posts")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"posts": posts})
}

func (h *PortalHandler) Decide(c *fiber.Ctx) error {
	token := c.Params("token")
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	var decision transfer.ApprovalDecision
	if err := c.BodyParser(&decision); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if decision.Decision == "" {
		return BadRequest(c, "decision is required")
	}

	if err := h.s.Decide(c.Context(), token, int64(postID), &decision); err != nil {
		return Fail(c, err, "Unable to record decision")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

// ListApprovals is agency-side: the decisions clients recorded on a post.
func (h *PortalHandler) ListApprovals(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	approvals, err := h.s.ApprovalsForPost(c.Context(), userID, int64(postID))
	if err != nil {
		return Fail(c, err, "Unable to list approvals")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"approvals": approvals})
}

// Upload accepts brand content through the client's long-lived portal token.
func (h *PortalHandler) Upload(c *fiber.Ctx) error {
	token := c.Params("token")

	file, err := c.FormFile("file")
	if err != nil {
		return BadRequest(c, "No file provided")
	}
	notes := c.FormValue("notes")

	upload, err := h.up.CreateFromPortal(c.Context(), token, file, notes)
	if err != nil {
		return Fail(c, err, "Unable to save upload")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"upload": upload})
}
