package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, DefaultPageSize, ClampPageSize(-10))
	assert.Equal(t, 25, ClampPageSize(25))
	assert.Equal(t, MaxPageSize, ClampPageSize(MaxPageSize))
	assert.Equal(t, MaxPageSize, ClampPageSize(101))
	assert.Equal(t, MaxPageSize, ClampPageSize(10000))
}

func ownedClientRepo(clientID, userID int64) *fakeClientRepo {
	return &fakeClientRepo{
		getByID: func(ctx context.Context, id int64) (*models.Client, bool, error) {
			if id == clientID {
				return &models.Client{ID: clientID, UserID: userID}, true, nil
			}
			return nil, false, nil
		},
		checkByUserID: func(ctx context.Context, cID, uID int64) (bool, error) {
			return cID == clientID && uID == userID, nil
		},
	}
}

func TestCreatePostBlockedByMonthlyQuota(t *testing.T) {
	pr := &fakePostRepo{
		countByUserIDSince: func(ctx context.Context, userID int64, since time.Time) (int, error) {
			return 30, nil
		},
	}
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return &models.Subscription{UserID: userID, Tier: models.TierStarter}, true, nil
		},
	}

	s := NewPostService(pr, ownedClientRepo(3, 1), &fakeApprovalRepo{}, sb, &fakePublishHistoryRepo{}, &fakeLateService{})
	_, err := s.Create(context.Background(), 1, &transfer.PostCreation{ClientID: 3, Caption: "hello"})
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestCreatePostFreemiumCannotPost(t *testing.T) {
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return nil, false, nil
		},
	}
	pr := &fakePostRepo{
		countByUserIDSince: func(ctx context.Context, userID int64, since time.Time) (int, error) {
			return 0, nil
		},
	}

	s := NewPostService(pr, ownedClientRepo(3, 1), &fakeApprovalRepo{}, sb, &fakePublishHistoryRepo{}, &fakeLateService{})
	_, err := s.Create(context.Background(), 1, &transfer.PostCreation{ClientID: 3, Caption: "hello"})
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestCreatePostAgencyTierIsUnlimited(t *testing.T) {
	pr := &fakePostRepo{
		create: func(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
			assert.Equal(t, models.PostStateUnscheduled, post.State)
			assert.Equal(t, models.ApprovalStatusPending, post.ApprovalStatus)
			return 42, nil
		},
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3, Caption: "hello", State: models.PostStateUnscheduled}, true, nil
		},
	}
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return &models.Subscription{UserID: userID, Tier: models.TierAgency}, true, nil
		},
	}

	s := NewPostService(pr, ownedClientRepo(3, 1), &fakeApprovalRepo{}, sb, &fakePublishHistoryRepo{}, &fakeLateService{})
	post, err := s.Create(context.Background(), 1, &transfer.PostCreation{ClientID: 3, Caption: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), post.ID)
	assert.Equal(t, models.PostStateUnscheduled, post.State)
}

func TestCreatePostForeignClient(t *testing.T) {
	c := &fakeClientRepo{
		getByID: func(ctx context.Context, id int64) (*models.Client, bool, error) {
			return &models.Client{ID: id, UserID: 2}, true, nil
		},
		checkByUserID: func(ctx context.Context, clientID, userID int64) (bool, error) {
			return false, nil
		},
	}

	s := NewPostService(&fakePostRepo{}, c, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	_, err := s.Create(context.Background(), 1, &transfer.PostCreation{ClientID: 3, Caption: "hello"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestScheduleRejectsBadDate(t *testing.T) {
	s := NewPostService(&fakePostRepo{}, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	err := s.Schedule(context.Background(), 1, 7, &transfer.PostSchedule{ScheduledDate: "01/09/2026", ScheduledTime: "10:00"})
	require.Error(t, err)

	err = s.Schedule(context.Background(), 1, 7, &transfer.PostSchedule{ScheduledDate: "2026-09-01", ScheduledTime: "10:00pm"})
	require.Error(t, err)
}

func TestScheduleAlreadyScheduledIsConflict(t *testing.T) {
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3, State: models.PostStateScheduled}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
		schedule: func(ctx context.Context, postID int64, date, timeOfDay string) (bool, error) {
			return false, nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	err := s.Schedule(context.Background(), 1, 7, &transfer.PostSchedule{ScheduledDate: "2026-09-01", ScheduledTime: "10:00"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRemoveWithdrawsExternallyScheduledPost(t *testing.T) {
	removed := false
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3, LatePostID: sql.NullString{String: "lp_9", Valid: true}}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
		remove: func(ctx context.Context, id int64) error {
			removed = true
			return nil
		},
	}
	var deletedID string
	late := &fakeLateService{
		deletePost: func(ctx context.Context, latePostID string) error {
			deletedID = latePostID
			return nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, late)
	err := s.Remove(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "lp_9", deletedID)
	assert.True(t, removed)
}

func TestRemoveKeepsPostWhenWithdrawalFails(t *testing.T) {
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3, LatePostID: sql.NullString{String: "lp_9", Valid: true}}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
	}
	late := &fakeLateService{
		deletePost: func(ctx context.Context, latePostID string) error {
			return assert.AnError
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, late)
	err := s.Remove(context.Background(), 1, 7)
	require.Error(t, err)
}

func TestRemoveSkipsSchedulerForLocalOnlyPost(t *testing.T) {
	removed := false
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
		remove: func(ctx context.Context, id int64) error {
			removed = true
			return nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	err := s.Remove(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestPostInfoUnknownPost(t *testing.T) {
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return nil, false, nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	_, err := s.PostInfo(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostInfoForeignPost(t *testing.T) {
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	_, err := s.PostInfo(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPublishHistoryListsAttemptsForOwnedPost(t *testing.T) {
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
	}
	ph := &fakePublishHistoryRepo{
		listByPostID: func(ctx context.Context, postID int64) ([]*models.PublishHistory, error) {
			return []*models.PublishHistory{
				{ID: 2, PostID: postID, LatePostID: "lp_2"},
				{ID: 1, PostID: postID, ErrorMessage: "scheduler returned 502"},
			}, nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, ph, &fakeLateService{})
	history, err := s.PublishHistory(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "lp_2", history[0].LatePostID)
}

func TestPublishHistoryForeignPost(t *testing.T) {
	pr := &fakePostRepo{
		getByID: func(ctx context.Context, id int64) (*models.Post, bool, error) {
			return &models.Post{ID: id, ClientID: 3}, true, nil
		},
		checkByUserID: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
	}

	s := NewPostService(pr, &fakeClientRepo{}, &fakeApprovalRepo{}, &fakeSubscriptionRepo{}, &fakePublishHistoryRepo{}, &fakeLateService{})
	_, err := s.PublishHistory(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}
