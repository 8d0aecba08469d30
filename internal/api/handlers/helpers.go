package handlers

import (
	"errors"
	"strconv"

	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// exposeErrorDetails widens failure payloads with raw error text outside
// production.
var exposeErrorDetails bool

func Configure(environment string) {
	exposeErrorDetails = environment == "development"
}

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// OK writes the shared success envelope.
func OK(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// Fail writes the shared failure envelope, mapping known sentinel errors to
// their status codes.
func Fail(c *fiber.Ctx, err error, fallback string) error {
	status, message := classify(err, fallback)

	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if exposeErrorDetails && err != nil {
		body["details"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// BadRequest is for validation failures detected in the handler itself.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func classify(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden, "Forbidden"
	case errors.Is(err, service.ErrLimitReached):
		return fiber.StatusForbidden, "Subscription limit reached"
	case errors.Is(err, service.ErrSessionExpired):
		return fiber.StatusGone, "Session expired"
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict, "Conflict"
	case errors.Is(err, repository.ErrInsufficientCredits):
		return fiber.StatusPaymentRequired, "INSUFFICIENT_CREDITS"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "57014" {
		return fiber.StatusRequestTimeout, "Query timed out, try a smaller page size"
	}

	return fiber.StatusInternalServerError, fallback
}
