package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	config "github.com/cambrewitt-ship-it/contentflow/configs"
	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	stripesub "github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"
)

type StripeService interface {
	CreateCheckoutSession(ctx context.Context, userID int64, userEmail, tier string) (string, error)
	CreatePortalSession(ctx context.Context, userID int64) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type stripeService struct {
	cfg config.Config
	sb  repository.SubscriptionRepository
}

func NewStripeService(cfg config.Config, sb repository.SubscriptionRepository) StripeService {
	stripe.Key = cfg.Stripe.SecretKey
	return &stripeService{
		cfg: cfg,
		sb:  sb,
	}
}

func (s *stripeService) priceForTier(tier string) string {
	switch tier {
	case models.TierStarter:
		return s.cfg.Stripe.PriceStarter
	case models.TierProfessional:
		return s.cfg.Stripe.PriceProfessional
	case models.TierAgency:
		return s.cfg.Stripe.PriceAgency
	}
	return ""
}

func (s *stripeService) tierForPrice(priceID string) string {
	switch priceID {
	case s.cfg.Stripe.PriceStarter:
		return models.TierStarter
	case s.cfg.Stripe.PriceProfessional:
		return models.TierProfessional
	case s.cfg.Stripe.PriceAgency:
		return models.TierAgency
	}
	return models.TierFreemium
}

func (s *stripeService) CreateCheckoutSession(ctx context.Context, userID int64, userEmail, tier string) (string, error) {
	priceID := s.priceForTier(tier)
	if priceID == "" {
		return "", fmt.Errorf("no price configured for tier %q", tier)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(strconv.FormatInt(userID, 10)),
		CustomerEmail:     stripe.String(userEmail),
		SuccessURL:        stripe.String(s.cfg.FrontendURL + "/billing/success"),
		CancelURL:         stripe.String(s.cfg.FrontendURL + "/billing"),
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		slog.Error(err.Error())
		return "", fmt.Errorf("error creating checkout session: %w", err)
	}
	return sess.URL, nil
}

func (s *stripeService) CreatePortalSession(ctx context.Context, userID int64) (string, error) {
	sub, isExist, err := s.sb.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("error getting subscription: %w", err)
	}
	if !isExist || !sub.StripeCustomerID.Valid {
		return "", ErrNotFound
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(sub.StripeCustomerID.String),
		ReturnURL: stripe.String(s.cfg.FrontendURL + "/billing"),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		slog.Error(err.Error())
		return "", fmt.Errorf("error creating portal session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook verifies the signature and syncs the local subscription row
// with what Stripe reports.
func (s *stripeService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.Stripe.WebhookSecret)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return fmt.Errorf("error parsing checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(ctx, &cs)

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("error parsing subscription: %w", err)
		}
		return s.handleSubscriptionChanged(ctx, &sub, event.Type == "customer.subscription.deleted")
	}

	return nil
}

func (s *stripeService) handleCheckoutCompleted(ctx context.Context, cs *stripe.CheckoutSession) error {
	userID, err := strconv.ParseInt(cs.ClientReferenceID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid client reference id %q: %w", cs.ClientReferenceID, err)
	}

	if cs.Customer == nil || cs.Subscription == nil {
		return fmt.Errorf("checkout session %s missing customer or subscription", cs.ID)
	}

	stripeSub, err := stripesub.Get(cs.Subscription.ID, nil)
	if err != nil {
		slog.Error(err.Error())
		return fmt.Errorf("error fetching subscription: %w", err)
	}

	tier := models.TierFreemium
	if len(stripeSub.Items.Data) > 0 {
		tier = s.tierForPrice(stripeSub.Items.Data[0].Price.ID)
	}

	record := &models.Subscription{
		UserID:             userID,
		Tier:               tier,
		Status:             string(stripeSub.Status),
		IsSelfManagedTrial: false,
		CurrentPeriodStart: time.Unix(stripeSub.CurrentPeriodStart, 0),
		CurrentPeriodEnd:   time.Unix(stripeSub.CurrentPeriodEnd, 0),
		CreditsRemaining:   models.LimitsForTier(tier).MaxAICreditsPerMonth,
	}

	_, isExist, err := s.sb.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting subscription: %w", err)
	}
	if isExist {
		if err := s.sb.Update(ctx, record); err != nil {
			return err
		}
	} else {
		if _, err := s.sb.Create(ctx, record); err != nil {
			return err
		}
	}

	return s.sb.SetStripeIDs(ctx, userID, cs.Customer.ID, stripeSub.ID)
}

func (s *stripeService) handleSubscriptionChanged(ctx context.Context, stripeSub *stripe.Subscription, deleted bool) error {
	userID, err := s.userIDForCustomer(ctx, stripeSub)
	if err != nil {
		return err
	}

	tier := models.TierFreemium
	status := models.SubscriptionStatusCanceled
	if !deleted {
		if len(stripeSub.Items.Data) > 0 {
			tier = s.tierForPrice(stripeSub.Items.Data[0].Price.ID)
		}
		status = string(stripeSub.Status)
	}

	record := &models.Subscription{
		UserID:             userID,
		Tier:               tier,
		Status:             status,
		IsSelfManagedTrial: false,
		CurrentPeriodStart: time.Unix(stripeSub.CurrentPeriodStart, 0),
		CurrentPeriodEnd:   time.Unix(stripeSub.CurrentPeriodEnd, 0),
		CreditsRemaining:   models.LimitsForTier(tier).MaxAICreditsPerMonth,
	}
	return s.sb.Update(ctx, record)
}

// Stripe does not carry our user id on subscription events, so the metadata
// set at checkout is the join key, with the stored customer id as fallback.
func (s *stripeService) userIDForCustomer(ctx context.Context, stripeSub *stripe.Subscription) (int64, error) {
	if ref, ok := stripeSub.Metadata["user_id"]; ok {
		if userID, err := strconv.ParseInt(ref, 10, 64); err == nil {
			return userID, nil
		}
	}

	if stripeSub.Customer == nil {
		return 0, fmt.Errorf("subscription %s has no customer", stripeSub.ID)
	}

	userID, err := s.sb.GetUserIDByCustomerID(ctx, stripeSub.Customer.ID)
	if err != nil {
		return 0, fmt.Errorf("error resolving customer %s: %w", stripeSub.Customer.ID, err)
	}
	return userID, nil
}
