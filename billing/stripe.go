// Package billing creates Stripe checkout sessions for paid subscription
// plans. Plan-to-price mapping comes from environment variables so price
// changes never require a deploy.
package billing

import (
	"errors"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"blog-fusion/models"
)

var (
	// ErrUnknownPlan is returned for a plan name outside the known tiers.
	ErrUnknownPlan = errors.New("billing: unknown subscription plan")
	// ErrNotBillable is returned for the free basic plan.
	ErrNotBillable = errors.New("billing: plan has no price")
)

// Checkout wraps Stripe checkout session creation.
type Checkout struct {
	successURL string
	cancelURL  string

	// create is swappable for tests.
	create func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewCheckout configures the Stripe client from STRIPE_SECRET_KEY and the
// redirect URLs from CHECKOUT_SUCCESS_URL / CHECKOUT_CANCEL_URL.
func NewCheckout() (*Checkout, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY environment variable is not set")
	}
	stripe.Key = key

	successURL := os.Getenv("CHECKOUT_SUCCESS_URL")
	if successURL == "" {
		successURL = "http://localhost:3000/payment/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := os.Getenv("CHECKOUT_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = "http://localhost:3000/payment/cancel"
	}

	return &Checkout{
		successURL: successURL,
		cancelURL:  cancelURL,
		create:     session.New,
	}, nil
}

// PriceIDForPlan resolves a paid plan to its Stripe price id.
func PriceIDForPlan(plan string) (string, error) {
	switch plan {
	case models.PlanMedium:
		return requireEnv("STRIPE_PRICE_MEDIUM")
	case models.PlanPremium:
		return requireEnv("STRIPE_PRICE_PREMIUM")
	case models.PlanBasic:
		return "", ErrNotBillable
	}
	return "", ErrUnknownPlan
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s environment variable is not set", key)
	}
	return v, nil
}

// Session is the subset of the created checkout session the API exposes.
type Session struct {
	ID  string
	URL string
}

// CreateSession creates a subscription checkout session for userID and plan.
// The user id and plan ride along as session metadata so the fulfillment
// side can apply the upgrade.
func (c *Checkout) CreateSession(userID, email, plan string) (Session, error) {
	priceID, err := PriceIDForPlan(plan)
	if err != nil {
		return Session{}, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.AddMetadata("userId", userID)
	params.AddMetadata("plan", plan)

	s, err := c.create(params)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return Session{ID: s.ID, URL: s.URL}, nil
}
