package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failWith(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Fail(c, err, "Something went wrong")
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	body, reqErr := io.ReadAll(resp.Body)
	require.NoError(t, reqErr)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	return resp.StatusCode, parsed
}

func TestFailMapsSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", service.ErrNotFound, fiber.StatusNotFound, "Not found"},
		{"forbidden", service.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
		{"limit reached", service.ErrLimitReached, fiber.StatusForbidden, "Subscription limit reached"},
		{"session expired", service.ErrSessionExpired, fiber.StatusGone, "Session expired"},
		{"conflict", service.ErrConflict, fiber.StatusConflict, "Conflict"},
		{"insufficient credits", repository.ErrInsufficientCredits, fiber.StatusPaymentRequired, "INSUFFICIENT_CREDITS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := failWith(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestFailMapsStatementTimeout(t *testing.T) {
	status, body := failWith(t, &pq.Error{Code: "57014"})
	assert.Equal(t, fiber.StatusRequestTimeout, status)
	assert.Equal(t, "Query timed out, try a smaller page size", body["error"])
}

func TestFailUnknownErrorUsesFallback(t *testing.T) {
	status, body := failWith(t, assert.AnError)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Something went wrong", body["error"])
}

func TestFailDetailsOnlyOutsideProduction(t *testing.T) {
	Configure("production")
	_, body := failWith(t, assert.AnError)
	assert.NotContains(t, body, "details")

	Configure("development")
	_, body = failWith(t, assert.AnError)
	assert.Contains(t, body, "details")

	Configure("production")
}

func TestOKMergesPayloadIntoEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return OK(c, fiber.StatusCreated, fiber.Map{"post": fiber.Map{"id": 7}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, true, parsed["success"])
	assert.Contains(t, parsed, "post")
}
