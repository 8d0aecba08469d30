package service

import (
	"context"
	"testing"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadCountsSumActivitySinceLastView(t *testing.T) {
	c := &fakeClientRepo{
		listByUserID: func(ctx context.Context, userID int64) ([]*models.Client, error) {
			return []*models.Client{{ID: 3, UserID: userID}, {ID: 4, UserID: userID}}, nil
		},
	}
	ac := &fakeActivityRepo{
		getViewedAt: func(ctx context.Context, userID, clientID int64) (time.Time, error) {
			// client 4 has never been viewed
			if clientID == 3 {
				return time.Now().Add(-24 * time.Hour), nil
			}
			return time.Time{}, nil
		},
		countUploadsSince: func(ctx context.Context, clientID int64, since time.Time) (int, error) {
			if clientID == 3 {
				return 2, nil
			}
			return 5, nil
		},
		countApprovedPostsSince: func(ctx context.Context, clientID int64, since time.Time) (int, error) {
			if clientID == 3 {
				return 1, nil
			}
			return 0, nil
		},
		countActivitySince: func(ctx context.Context, clientID int64, activityType string, since time.Time) (int, error) {
			assert.Equal(t, models.ActivityTypePortalVisit, activityType)
			if clientID == 3 {
				return 3, nil
			}
			return 1, nil
		},
	}

	s := NewActivityService(ac, c)
	counts, err := s.UnreadCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{3: 6, 4: 6}, counts)
}

func TestUnreadCountsNoClients(t *testing.T) {
	c := &fakeClientRepo{
		listByUserID: func(ctx context.Context, userID int64) ([]*models.Client, error) {
			return nil, nil
		},
	}

	s := NewActivityService(&fakeActivityRepo{}, c)
	counts, err := s.UnreadCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestMarkViewedOwnershipChecks(t *testing.T) {
	c := &fakeClientRepo{
		getByID: func(ctx context.Context, id int64) (*models.Client, bool, error) {
			if id == 3 {
				return &models.Client{ID: 3, UserID: 2}, true, nil
			}
			return nil, false, nil
		},
		checkByUserID: func(ctx context.Context, clientID, userID int64) (bool, error) {
			return false, nil
		},
	}

	s := NewActivityService(&fakeActivityRepo{}, c)

	err := s.MarkViewed(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.MarkViewed(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkViewedResetsWatermark(t *testing.T) {
	marked := false
	c := &fakeClientRepo{
		getByID: func(ctx context.Context, id int64) (*models.Client, bool, error) {
			return &models.Client{ID: id, UserID: 1}, true, nil
		},
		checkByUserID: func(ctx context.Context, clientID, userID int64) (bool, error) {
			return true, nil
		},
	}
	ac := &fakeActivityRepo{
		markViewed: func(ctx context.Context, userID, clientID int64) error {
			marked = true
			return nil
		},
	}

	s := NewActivityService(ac, c)
	require.NoError(t, s.MarkViewed(context.Background(), 1, 3))
	assert.True(t, marked)
}
