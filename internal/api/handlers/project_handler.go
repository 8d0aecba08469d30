package handlers

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	s service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{s: service}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.ProjectCreation
	if err := c.BodyParser(&pc); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if pc.ClientID == 0 || pc.Name == "" {
		return BadRequest(c, "client_id and name are required")
	}

	id, err := h.s.Create(c.Context(), userID, &pc)
	if err != nil {
		return Fail(c, err, "Unable to create project")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"id": id})
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("client_id", 0)
	if clientID == 0 {
		return BadRequest(c, "client_id is required")
	}

	projects, err := h.s.List(c.Context(), userID, int64(clientID))
	if err != nil {
		return Fail(c, err, "Unable to list projects")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"projects": projects})
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	userID := GetUserID(c)
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid project id")
	}

	project, err := h.s.ProjectInfo(c.Context(), userID, int64(projectID))
	if err != nil {
		return Fail(c, err, "Unable to get project")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"project": project})
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	userID := GetUserID(c)
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid project id")
	}

	var pu transfer.ProjectUpdate
	if err := c.BodyParser(&pu); err != nil {
		return BadRequest(c, "Unable to parse json")
	}

	if err := h.s.Update(c.Context(), userID, int64(projectID), &pu); err != nil {
		return Fail(c, err, "Unable to update project")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

func (h *ProjectHandler) RemoveProject(c *fiber.Ctx) error {
	userID := GetUserID(c)
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid project id")
	}

	if err := h.s.Remove(c.Context(), userID, int64(projectID)); err != nil {
		return Fail(c, err, "Unable to remove project")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}
