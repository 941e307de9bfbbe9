package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func TestPriceIDForPlan(t *testing.T) {
	t.Setenv("STRIPE_PRICE_MEDIUM", "price_medium_123")
	t.Setenv("STRIPE_PRICE_PREMIUM", "price_premium_456")

	id, err := PriceIDForPlan("medium")
	require.NoError(t, err)
	assert.Equal(t, "price_medium_123", id)

	id, err = PriceIDForPlan("premium")
	require.NoError(t, err)
	assert.Equal(t, "price_premium_456", id)
}

func TestPriceIDForPlanBasicIsNotBillable(t *testing.T) {
	_, err := PriceIDForPlan("basic")
	assert.ErrorIs(t, err, ErrNotBillable)
}

func TestPriceIDForPlanUnknown(t *testing.T) {
	_, err := PriceIDForPlan("platinum")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestPriceIDForPlanMissingEnv(t *testing.T) {
	t.Setenv("STRIPE_PRICE_MEDIUM", "")
	_, err := PriceIDForPlan("medium")
	assert.Error(t, err)
}

func TestCreateSessionPassesMetadata(t *testing.T) {
	t.Setenv("STRIPE_PRICE_PREMIUM", "price_premium_456")

	var captured *stripe.CheckoutSessionParams
	c := &Checkout{
		successURL: "https://app.example.com/ok",
		cancelURL:  "https://app.example.com/no",
		create: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			captured = params
			return &stripe.CheckoutSession{ID: "cs_test", URL: "https://checkout.stripe.com/pay/cs_test"}, nil
		},
	}

	sess, err := c.CreateSession("user-1", "user@example.com", "premium")
	require.NoError(t, err)
	assert.Equal(t, "cs_test", sess.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", sess.URL)

	require.NotNil(t, captured)
	assert.Equal(t, "subscription", *captured.Mode)
	require.Len(t, captured.LineItems, 1)
	assert.Equal(t, "price_premium_456", *captured.LineItems[0].Price)
	assert.Equal(t, "user@example.com", *captured.CustomerEmail)
	assert.Equal(t, "user-1", captured.Metadata["userId"])
	assert.Equal(t, "premium", captured.Metadata["plan"])
}

func TestCreateSessionRejectsUnknownPlan(t *testing.T) {
	c := &Checkout{create: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		t.Fatal("create must not be called for an unknown plan")
		return nil, nil
	}}

	_, err := c.CreateSession("user-1", "user@example.com", "platinum")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}
