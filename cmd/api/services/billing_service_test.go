package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/billing"
	"blog-fusion/models"
)

type stubCheckout struct {
	session billing.Session
	err     error

	userID string
	email  string
	plan   string
}

func (c *stubCheckout) CreateSession(userID, email, plan string) (billing.Session, error) {
	c.userID = userID
	c.email = email
	c.plan = plan
	if c.err != nil {
		return billing.Session{}, c.err
	}
	return c.session, nil
}

func TestCreateCheckoutReturnsSession(t *testing.T) {
	users := newStubUserStore(&models.User{ID: "u1", Email: "u1@example.com"})
	checkout := &stubCheckout{session: billing.Session{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/pay/cs_test_123",
	}}
	svc := NewBillingService(checkout, users, nil)

	sess, err := svc.CreateCheckout(context.Background(), "u1", models.PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, checkout.session, sess)
	assert.Equal(t, "u1", checkout.userID)
	assert.Equal(t, "u1@example.com", checkout.email)
	assert.Equal(t, models.PlanPremium, checkout.plan)
}

func TestCreateCheckoutUnknownUser(t *testing.T) {
	svc := NewBillingService(&stubCheckout{}, newStubUserStore(), nil)

	_, err := svc.CreateCheckout(context.Background(), "ghost", models.PlanMedium)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateCheckoutPassesThroughBillingErrors(t *testing.T) {
	users := newStubUserStore(&models.User{ID: "u1"})
	svc := NewBillingService(&stubCheckout{err: billing.ErrNotBillable}, users, nil)

	_, err := svc.CreateCheckout(context.Background(), "u1", models.PlanBasic)
	assert.ErrorIs(t, err, billing.ErrNotBillable)
}

func TestApplyPlanUpdatesUser(t *testing.T) {
	users := newStubUserStore(&models.User{ID: "u1", SubscriptionPlan: models.PlanBasic})
	svc := NewBillingService(&stubCheckout{}, users, nil)

	require.NoError(t, svc.ApplyPlan(context.Background(), "u1", models.PlanMedium))

	u, err := users.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanMedium, u.SubscriptionPlan)
}

func TestApplyPlanRejectsUnknownPlan(t *testing.T) {
	users := newStubUserStore(&models.User{ID: "u1"})
	svc := NewBillingService(&stubCheckout{}, users, nil)

	assert.ErrorIs(t, svc.ApplyPlan(context.Background(), "u1", "platinum"), billing.ErrUnknownPlan)
}

func TestApplyPlanUnknownUser(t *testing.T) {
	svc := NewBillingService(&stubCheckout{}, newStubUserStore(), nil)

	assert.ErrorIs(t, svc.ApplyPlan(context.Background(), "ghost", models.PlanMedium), ErrUserNotFound)
}
