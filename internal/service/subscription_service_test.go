package service

import (
	"context"
	"testing"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoFallsBackToFreemium(t *testing.T) {
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return nil, false, nil
		},
	}

	s := NewSubscriptionService(sb)
	info, err := s.Info(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.TierFreemium, info.Subscription.Tier)
	assert.Equal(t, 1, info.Limits.MaxClients)
	assert.Equal(t, 0, info.Limits.MaxPostsPerMonth)
}

func TestStartTrialCreatesSelfManagedTrial(t *testing.T) {
	var created *models.Subscription
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return nil, false, nil
		},
		create: func(ctx context.Context, subscription *models.Subscription) (int64, error) {
			created = subscription
			return 11, nil
		},
	}

	s := NewSubscriptionService(sb)
	sub, err := s.StartTrial(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, int64(11), sub.ID)
	assert.Equal(t, models.TierTrial, sub.Tier)
	assert.Equal(t, models.SubscriptionStatusTrialing, sub.Status)
	assert.True(t, sub.IsSelfManagedTrial)
	assert.Equal(t, 50, sub.CreditsRemaining)
	assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), sub.CurrentPeriodEnd, time.Minute)
}

func TestStartTrialRefusedWhenAlreadySubscribed(t *testing.T) {
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return &models.Subscription{UserID: userID, Tier: models.TierStarter}, true, nil
		},
	}

	s := NewSubscriptionService(sb)
	_, err := s.StartTrial(context.Background(), 1)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStartTrialUpgradesExistingFreemiumRow(t *testing.T) {
	var updated *models.Subscription
	sb := &fakeSubscriptionRepo{
		getByUserID: func(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
			return &models.Subscription{ID: 4, UserID: userID, Tier: models.TierFreemium}, true, nil
		},
		update: func(ctx context.Context, subscription *models.Subscription) error {
			updated = subscription
			return nil
		},
	}

	s := NewSubscriptionService(sb)
	sub, err := s.StartTrial(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, int64(4), sub.ID)
	assert.Equal(t, models.TierTrial, updated.Tier)
	assert.True(t, updated.IsSelfManagedTrial)
	assert.Equal(t, 50, updated.CreditsRemaining)
}

func TestDeductCreditsRejectsNonPositiveAmount(t *testing.T) {
	s := NewSubscriptionService(&fakeSubscriptionRepo{})
	_, err := s.DeductCredits(context.Background(), 1, 0)
	require.Error(t, err)

	_, err = s.DeductCredits(context.Background(), 1, -5)
	require.Error(t, err)
}

func TestDeductCreditsPassesThroughInsufficientBalance(t *testing.T) {
	sb := &fakeSubscriptionRepo{
		deductCredit: func(ctx context.Context, userID int64, amount int) (int, error) {
			return 0, repository.ErrInsufficientCredits
		},
	}

	s := NewSubscriptionService(sb)
	_, err := s.DeductCredits(context.Background(), 1, 10)
	assert.ErrorIs(t, err, repository.ErrInsufficientCredits)
}
