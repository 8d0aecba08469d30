package handlers

import (
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/queue"
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type PostHandler struct {
	s           service.PostService
	AsynqClient *asynq.Client
}

func NewPostHandler(service service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if pc.ClientID == 0 {
		return BadRequest(c, "client_id is required")
	}
	if pc.Caption == "" {
		return BadRequest(c, "caption is required")
	}

	post, err := h.s.Create(c.Context(), userID, &pc)
	if err != nil {
		return Fail(c, err, "Unable to create post")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"post": post})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("client_id", 0)
	if clientID == 0 {
		return BadRequest(c, "client_id is required")
	}

	state := c.Query("state", models.PostStateUnscheduled)
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	posts, err := h.s.List(c.Context(), userID, int64(clientID), state, limit, offset)
	if err != nil {
		return Fail(c, err, "Unable to list posts")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"posts": posts})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	post, err := h.s.PostInfo(c.Context(), userID, int64(postID))
	if err != nil {
		return Fail(c, err, "Unable to get post")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"post": post})
}

func (h *PostHandler) SchedulePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	var ps transfer.PostSchedule
	if err := c.BodyParser(&ps); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if ps.ScheduledDate == "" || ps.ScheduledTime == "" {
		return BadRequest(c, "scheduled_date and scheduled_time are required")
	}

	if err := h.s.Schedule(c.Context(), userID, int64(postID), &ps); err != nil {
		return Fail(c, err, "Unable to schedule post")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	var pu transfer.PostUpdate
	if err := c.BodyParser(&pu); err != nil {
		return BadRequest(c, "Unable to parse json")
	}

	if err := h.s.Update(c.Context(), userID, int64(postID), &pu); err != nil {
		return Fail(c, err, "Unable to update post")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	if err := h.s.Remove(c.Context(), userID, int64(postID)); err != nil {
		return Fail(c, err, "Unable to remove post")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}

func (h *PostHandler) AddRevision(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	var rc transfer.RevisionCreation
	if err := c.BodyParser(&rc); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if rc.Caption == "" {
		return BadRequest(c, "caption is required")
	}

	number, err := h.s.AddRevision(c.Context(), userID, int64(postID), &rc)
	if err != nil {
		return Fail(c, err, "Unable to create revision")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"revision_number": number})
}

func (h *PostHandler) ListRevisions(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	revisions, err := h.s.ListRevisions(c.Context(), userID, int64(postID))
	if err != nil {
		return Fail(c, err, "Unable to list revisions")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"revisions": revisions})
}

func (h *PostHandler) ListPublishHistory(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	history, err := h.s.PublishHistory(c.Context(), userID, int64(postID))
	if err != nil {
		return Fail(c, err, "Unable to list publish history")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"history": history})
}

// PublishPost queues the post for delivery to the external scheduler at its
// scheduled time, or immediately when that time has passed.
func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return BadRequest(c, "Invalid post id")
	}

	var pr transfer.PublishRequest
	if err := c.BodyParser(&pr); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if len(pr.Platforms) == 0 {
		return BadRequest(c, "platforms are required")
	}
	if pr.Timezone == "" {
		pr.Timezone = "UTC"
	}

	post, err := h.s.PostInfo(c.Context(), userID, int64(postID))
	if err != nil {
		return Fail(c, err, "Unable to get post")
	}
	if !post.ScheduledDate.Valid || !post.ScheduledTime.Valid {
		return BadRequest(c, "Post has no scheduled date or time")
	}

	delay := publishDelay(post.ScheduledDate.String, post.ScheduledTime.String, pr.Timezone)

	err = queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{
		PostID:    post.ID,
		Platforms: pr.Platforms,
		Timezone:  pr.Timezone,
	}, delay)
	if err != nil {
		return Fail(c, err, "Error queueing post for publishing")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"message": "Post queued for publishing"})
}

func publishDelay(date, timeOfDay, timezone string) time.Duration {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, loc)
	if err != nil {
		return 0
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	return delay
}
