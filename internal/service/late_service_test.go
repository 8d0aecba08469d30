package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/cambrewitt-ship-it/contentflow/configs"
	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedulablePostRepo(recordedStatus *string, recordedLateID *string) *fakePostRepo {
	return &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{
				ID:            id,
				ClientID:      3,
				Caption:       "launch day",
				ImageURL:      sql.NullString{String: "https://cdn.example.com/a.png", Valid: true},
				ScheduledDate: sql.NullString{String: "2026-09-01", Valid: true},
				ScheduledTime: sql.NullString{String: "10:00", Valid: true},
			}, true, nil
		},
		updateLateInfo: func(ctx context.Context, postID int64, latePostID, lateStatus string, platforms []string) error {
			*recordedLateID = latePostID
			*recordedStatus = lateStatus
			return nil
		},
	}
}

func profileClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		getByID: func(ctx context.Context, id int64) (*models.Client, bool, error) {
			return &models.Client{ID: id, UserID: 1, LateProfileID: "prof_1"}, true, nil
		},
	}
}

func TestSchedulePostSendsPayloadAndRecordsResponse(t *testing.T) {
	var received transfer.LatePostRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/posts", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"post":{"_id":"lp_1","status":"scheduled"}}`))
	}))
	defer srv.Close()

	var status, lateID string
	var history *models.PublishHistory
	ph := &fakePublishHistoryRepo{
		create: func(ctx context.Context, h *models.PublishHistory) (int64, error) {
			history = h
			return 1, nil
		},
	}

	s := NewLateService(config.Config{LateAPIKey: "test-key", LateBaseURL: srv.URL},
		schedulablePostRepo(&status, &lateID), profileClientRepo(), ph)

	err := s.SchedulePost(context.Background(), 7, []string{"instagram", "facebook"}, "Pacific/Auckland")
	require.NoError(t, err)

	assert.Equal(t, "prof_1", received.ProfileID)
	assert.Equal(t, "launch day", received.Content)
	assert.Equal(t, "2026-09-01T10:00:00", received.ScheduledFor)
	assert.Equal(t, "Pacific/Auckland", received.Timezone)
	assert.Len(t, received.Platforms, 2)
	require.Len(t, received.MediaItems, 1)
	assert.Equal(t, "image", received.MediaItems[0].Type)

	assert.Equal(t, "lp_1", lateID)
	assert.Equal(t, models.LateStatusScheduled, status)
	require.NotNil(t, history)
	assert.Equal(t, "lp_1", history.LatePostID)
}

func TestSchedulePostUpstreamFailureIsRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"profile unavailable"}`))
	}))
	defer srv.Close()

	var status, lateID string
	var history *models.PublishHistory
	ph := &fakePublishHistoryRepo{
		create: func(ctx context.Context, h *models.PublishHistory) (int64, error) {
			history = h
			return 1, nil
		},
	}

	s := NewLateService(config.Config{LateAPIKey: "test-key", LateBaseURL: srv.URL},
		schedulablePostRepo(&status, &lateID), profileClientRepo(), ph)

	err := s.SchedulePost(context.Background(), 7, []string{"instagram"}, "UTC")
	require.Error(t, err)

	assert.Equal(t, models.LateStatusFailed, status)
	assert.Empty(t, lateID)
	require.NotNil(t, history)
	assert.Contains(t, history.ErrorMessage, "502")
}

func TestSchedulePostRequiresLinkedProfile(t *testing.T) {
	c := &fakeClientRepo{
		getByID: func(ctx context.Context, id int64) (*models.Client, bool, error) {
			return &models.Client{ID: id, UserID: 1}, true, nil
		},
	}
	var status, lateID string

	s := NewLateService(config.Config{LateAPIKey: "test-key", LateBaseURL: "http://localhost:0"},
		schedulablePostRepo(&status, &lateID), c, &fakePublishHistoryRepo{})

	err := s.SchedulePost(context.Background(), 7, []string{"instagram"}, "UTC")
	require.Error(t, err)
}

func TestGetAccountsFiltersByProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts", r.URL.Path)
		assert.Equal(t, "prof_1", r.URL.Query().Get("profileId"))
		w.Write([]byte(`{"accounts":[{"_id":"acc_1","platform":"instagram","username":"brand","connected":true}]}`))
	}))
	defer srv.Close()

	s := NewLateService(config.Config{LateAPIKey: "test-key", LateBaseURL: srv.URL},
		&fakePostRepo{}, &fakeClientRepo{}, &fakePublishHistoryRepo{})

	accounts, err := s.GetAccounts(context.Background(), "prof_1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "instagram", accounts[0].Platform)
	assert.True(t, accounts[0].Connected)
}

func TestSchedulePostRejectsMalformedStoredSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("scheduler should not be called")
	}))
	defer srv.Close()

	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{
				ID:            id,
				ClientID:      3,
				Caption:       "launch day",
				ScheduledDate: sql.NullString{String: "2026-09-01T00:00:00Z", Valid: true},
				ScheduledTime: sql.NullString{String: "10:00", Valid: true},
			}, true, nil
		},
	}

	s := NewLateService(config.Config{LateAPIKey: "test-key", LateBaseURL: srv.URL},
		pr, profileClientRepo(), &fakePublishHistoryRepo{})

	err := s.SchedulePost(context.Background(), 7, []string{"instagram"}, "UTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed schedule")
}
