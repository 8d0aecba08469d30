package models

import (
	"database/sql"
	"time"
)

type Subscription struct {
	ID                   int64          `db:"id" json:"id"`
	UserID               int64          `db:"user_id" json:"user_id"`
	Tier                 string         `db:"tier" json:"tier"`
	Status               string         `db:"status" json:"status"`
	StripeCustomerID     sql.NullString `db:"stripe_customer_id" json:"stripe_customer_id"`
	StripeSubscriptionID sql.NullString `db:"stripe_subscription_id" json:"stripe_subscription_id"`
	IsSelfManagedTrial   bool           `db:"is_self_managed_trial" json:"is_self_managed_trial"`
	CurrentPeriodStart   time.Time      `db:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd     time.Time      `db:"current_period_end" json:"current_period_end"`
	PostsUsedThisMonth   int            `db:"posts_used_this_month" json:"posts_used_this_month"`
	CreditsRemaining     int            `db:"credits_remaining" json:"credits_remaining"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	TierFreemium     = "freemium"
	TierStarter      = "starter"
	TierProfessional = "professional"
	TierAgency       = "agency"
	TierTrial        = "trial"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

type TierLimits struct {
	MaxClients           int `json:"max_clients"`
	MaxPostsPerMonth     int `json:"max_posts_per_month"`
	MaxAICreditsPerMonth int `json:"max_ai_credits_per_month"`
}

// -1 means unlimited. Freemium after a trial downgrade keeps its client but
// cannot create posts.
var tierLimits = map[string]TierLimits{
	TierFreemium:     {MaxClients: 1, MaxPostsPerMonth: 0, MaxAICreditsPerMonth: 5},
	TierStarter:      {MaxClients: 3, MaxPostsPerMonth: 30, MaxAICreditsPerMonth: 50},
	TierProfessional: {MaxClients: 10, MaxPostsPerMonth: 120, MaxAICreditsPerMonth: 250},
	TierAgency:       {MaxClients: -1, MaxPostsPerMonth: -1, MaxAICreditsPerMonth: 1000},
	TierTrial:        {MaxClients: 3, MaxPostsPerMonth: 30, MaxAICreditsPerMonth: 50},
}

func LimitsForTier(tier string) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[TierFreemium]
}
