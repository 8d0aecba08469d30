package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishDelay(t *testing.T) {
	future := time.Now().UTC().Add(48 * time.Hour)
	futureDate := future.Format("2006-01-02")
	futureTime := future.Format("15:04")

	t.Run("future time waits", func(t *testing.T) {
		delay := publishDelay(futureDate, futureTime, "UTC")
		assert.Greater(t, delay, 47*time.Hour)
	})

	t.Run("unknown timezone falls back to UTC", func(t *testing.T) {
		delay := publishDelay(futureDate, futureTime, "Not/AZone")
		assert.Greater(t, delay, 47*time.Hour)
	})

	t.Run("past time publishes immediately", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), publishDelay("2000-01-01", "00:00", "UTC"))
	})

	t.Run("malformed date publishes immediately", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), publishDelay("not-a-date", "10:00", "UTC"))
	})
}
