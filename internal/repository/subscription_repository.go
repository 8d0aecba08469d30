package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/lib/pq"
)

// ErrInsufficientCredits is raised by the deduct_credit database function
// when the balance would go negative. The deduction is atomic on the
// database side, so concurrent requests cannot overdraw.
var ErrInsufficientCredits = errors.New("INSUFFICIENT_CREDITS")

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error)
	Create(ctx context.Context, subscription *models.Subscription) (int64, error)
	Update(ctx context.Context, subscription *models.Subscription) error
	SetStripeIDs(ctx context.Context, userID int64, customerID, subscriptionID string) error
	GetUserIDByCustomerID(ctx context.Context, customerID string) (int64, error)
	DeductCredit(ctx context.Context, userID int64, amount int) (int, error)
	ExpireTrials(ctx context.Context, now time.Time) (int64, error)
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, tier, status, stripe_customer_id, stripe_subscription_id,
	is_self_managed_trial, current_period_start, current_period_end, posts_used_this_month,
	credits_remaining, created_at, updated_at`

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	var s models.Subscription
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE user_id = $1"
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Tier, &s.Status,
		&s.StripeCustomerID, &s.StripeSubscriptionID, &s.IsSelfManagedTrial,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.PostsUsedThisMonth,
		&s.CreditsRemaining, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &s, true, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (user_id, tier, status, stripe_customer_id, stripe_subscription_id,
			is_self_managed_trial, current_period_start, current_period_end, credits_remaining)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, subscription.UserID, subscription.Tier, subscription.Status,
		subscription.StripeCustomerID, subscription.StripeSubscriptionID, subscription.IsSelfManagedTrial,
		subscription.CurrentPeriodStart, subscription.CurrentPeriodEnd, subscription.CreditsRemaining).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET tier = $1,
			status = $2,
			is_self_managed_trial = $3,
			current_period_start = $4,
			current_period_end = $5,
			credits_remaining = $6,
			updated_at = $7
		WHERE user_id = $8
	`
	_, err := r.db.ExecContext(ctx, query, subscription.Tier, subscription.Status,
		subscription.IsSelfManagedTrial, subscription.CurrentPeriodStart,
		subscription.CurrentPeriodEnd, subscription.CreditsRemaining, time.Now(), subscription.UserID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *subscriptionRepository) SetStripeIDs(ctx context.Context, userID int64, customerID, subscriptionID string) error {
	query := `
		UPDATE subscriptions
		SET stripe_customer_id = $1,
			stripe_subscription_id = $2,
			updated_at = $3
		WHERE user_id = $4
	`
	_, err := r.db.ExecContext(ctx, query, customerID, subscriptionID, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *subscriptionRepository) GetUserIDByCustomerID(ctx context.Context, customerID string) (int64, error) {
	var userID int64
	query := "SELECT user_id FROM subscriptions WHERE stripe_customer_id = $1"
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&userID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return userID, nil
}

func (r *subscriptionRepository) DeductCredit(ctx context.Context, userID int64, amount int) (int, error) {
	var remaining int
	err := r.db.QueryRowContext(ctx, "SELECT deduct_credit($1, $2)", userID, amount).Scan(&remaining)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && strings.Contains(pqErr.Message, "INSUFFICIENT_CREDITS") {
			return 0, ErrInsufficientCredits
		}
		slog.Info(err.Error())
		return 0, err
	}
	return remaining, nil
}

// ExpireTrials downgrades self-managed trials whose period has ended.
// Stripe-managed subscriptions are never touched here; their lifecycle is
// driven by webhooks.
func (r *subscriptionRepository) ExpireTrials(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE subscriptions
		SET tier = $1,
			status = $2,
			is_self_managed_trial = FALSE,
			updated_at = $3
		WHERE tier = $4 AND is_self_managed_trial = TRUE AND current_period_end < $5
	`
	res, err := r.db.ExecContext(ctx, query, models.TierFreemium, models.SubscriptionStatusActive, time.Now(), models.TierTrial, now)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}
