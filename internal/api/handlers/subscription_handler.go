package handlers

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type SubscriptionHandler struct {
	s  service.SubscriptionService
	st service.StripeService
	u  service.UserService
}

func NewSubscriptionHandler(subs service.SubscriptionService, stripe service.StripeService, users service.UserService) *SubscriptionHandler {
	return &SubscriptionHandler{s: subs, st: stripe, u: users}
}

func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	userID := GetUserID(c)

	info, err := h.s.Info(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to get subscription")
	}

	return OK(c, fiber.StatusOK, fiber.Map{
		"subscription": info.Subscription,
		"limits":       info.Limits,
	})
}

func (h *SubscriptionHandler) StartTrial(c *fiber.Ctx) error {
	userID := GetUserID(c)

	sub, err := h.s.StartTrial(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to start trial")
	}

	return OK(c, fiber.StatusCreated, fiber.Map{"subscription": sub})
}

func (h *SubscriptionHandler) CreateCheckout(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var cc transfer.CheckoutCreation
	if err := c.BodyParser(&cc); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if cc.Tier == "" {
		return BadRequest(c, "tier is required")
	}

	user, err := h.u.GetUserInfo(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to get user info")
	}

	url, err := h.st.CreateCheckoutSession(c.Context(), userID, user.Email, cc.Tier)
	if err != nil {
		return Fail(c, err, "Unable to create checkout session")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"url": url})
}

func (h *SubscriptionHandler) CreatePortal(c *fiber.Ctx) error {
	userID := GetUserID(c)

	url, err := h.st.CreatePortalSession(c.Context(), userID)
	if err != nil {
		return Fail(c, err, "Unable to create billing portal session")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"url": url})
}

func (h *SubscriptionHandler) DeductCredits(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var cd transfer.CreditDeduction
	if err := c.BodyParser(&cd); err != nil {
		return BadRequest(c, "Unable to parse json")
	}
	if cd.Amount <= 0 {
		return BadRequest(c, "amount must be positive")
	}

	remaining, err := h.s.DeductCredits(c.Context(), userID, cd.Amount)
	if err != nil {
		return Fail(c, err, "Unable to deduct credits")
	}

	return OK(c, fiber.StatusOK, fiber.Map{"credits_remaining": remaining})
}

// StripeWebhook is unauthenticated; the payload signature is the proof of
// origin.
func (h *SubscriptionHandler) StripeWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")

	if err := h.st.HandleWebhook(c.Context(), c.Body(), signature); err != nil {
		return BadRequest(c, "Webhook processing failed")
	}

	return OK(c, fiber.StatusOK, fiber.Map{})
}
