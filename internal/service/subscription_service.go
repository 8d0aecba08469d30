package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
)

const trialDuration = 14 * 24 * time.Hour

const trialCredits = 50

type SubscriptionInfo struct {
	Subscription *models.Subscription `json:"subscription"`
	Limits       models.TierLimits    `json:"limits"`
}

type SubscriptionService interface {
	Info(ctx context.Context, userID int64) (*SubscriptionInfo, error)
	StartTrial(ctx context.Context, userID int64) (*models.Subscription, error)
	DeductCredits(ctx context.Context, userID int64, amount int) (int, error)
	ExpireTrials(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	sb repository.SubscriptionRepository
}

func NewSubscriptionService(sb repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{
		sb: sb,
	}
}

// Info returns the caller's subscription with its tier ceilings. Users
// without a row are reported as freemium.
func (s *subscriptionService) Info(ctx context.Context, userID int64) (*SubscriptionInfo, error) {
	sub, isExist, err := s.sb.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting subscription: %w", err)
	}

	if !isExist {
		sub = &models.Subscription{
			UserID: userID,
			Tier:   models.TierFreemium,
			Status: models.SubscriptionStatusActive,
		}
	}

	return &SubscriptionInfo{
		Subscription: sub,
		Limits:       models.LimitsForTier(sub.Tier),
	}, nil
}

// StartTrial self-issues a 14-day trial with no Stripe objects behind it.
// The explicit is_self_managed_trial flag is what the expiry sweep keys on.
func (s *subscriptionService) StartTrial(ctx context.Context, userID int64) (*models.Subscription, error) {
	existing, isExist, err := s.sb.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting subscription: %w", err)
	}
	if isExist && existing.Tier != models.TierFreemium {
		slog.Info("trial refused, subscription already exists", "user_id", userID)
		return nil, ErrConflict
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:             userID,
		Tier:               models.TierTrial,
		Status:             models.SubscriptionStatusTrialing,
		IsSelfManagedTrial: true,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.Add(trialDuration),
		CreditsRemaining:   trialCredits,
	}

	if isExist {
		if err := s.sb.Update(ctx, sub); err != nil {
			return nil, fmt.Errorf("error upgrading to trial: %w", err)
		}
		sub.ID = existing.ID
	} else {
		id, err := s.sb.Create(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("error creating trial: %w", err)
		}
		sub.ID = id
	}
	return sub, nil
}

// DeductCredits defers the balance check to the database function so two
// concurrent requests cannot both spend the last credit.
func (s *subscriptionService) DeductCredits(ctx context.Context, userID int64, amount int) (int, error) {
	if amount <= 0 {
		err := errors.New("amount must be positive")
		slog.Info(err.Error())
		return 0, err
	}

	remaining, err := s.sb.DeductCredit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return 0, err
		}
		return 0, fmt.Errorf("error deducting credits: %w", err)
	}
	return remaining, nil
}

func (s *subscriptionService) ExpireTrials(ctx context.Context) (int64, error) {
	expired, err := s.sb.ExpireTrials(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error expiring trials: %w", err)
	}
	return expired, nil
}
