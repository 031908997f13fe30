package services

import (
	"testing"
	"time"

	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEvent_CheckoutCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())
	user := seedFreeUser(t, db)

	err := svc.HandleEvent(&SubscriptionEvent{
		Type:             EventCheckoutCompleted,
		UserID:           user.ID.String(),
		Plan:             plan.TierVitrine,
		StripeCustomerID: "cus_123",
		SubscriptionID:   "sub_123",
		SessionID:        "cs_123",
		AmountPaid:       29.90,
		PaymentMethod:    "card",
	})
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.PlanActive)
	assert.Equal(t, plan.TierVitrine, *reloaded.PlanActive)
	assert.Equal(t, "cus_123", reloaded.StripeCustomerID)
	assert.Equal(t, "sub_123", reloaded.StripeSubscriptionID)
	require.NotNil(t, reloaded.PlanExpireAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), *reloaded.PlanExpireAt, time.Minute)

	var history models.PlanHistory
	require.NoError(t, db.First(&history, "user_id = ?", user.ID).Error)
	assert.Equal(t, plan.TierVitrine, history.PlanName)
	assert.Equal(t, "paid", history.PaymentStatus)
	assert.InDelta(t, 29.90, history.AmountPaid, 0.001)
}

func TestHandleEvent_CheckoutWithoutMetadataIsIgnored(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())

	err := svc.HandleEvent(&SubscriptionEvent{
		Type:      EventCheckoutCompleted,
		SessionID: "cs_no_meta",
	})
	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.PlanHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleEvent_InvoicePaidRenews(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())

	soon := time.Now().Add(24 * time.Hour)
	user := seedUser(t, db, plan.TierPrateleira, &soon)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"stripe_customer_id":     "cus_456",
		"stripe_subscription_id": "sub_456",
	}).Error)

	err := svc.HandleEvent(&SubscriptionEvent{
		Type:             EventInvoicePaid,
		StripeCustomerID: "cus_456",
		SubscriptionID:   "sub_456",
		InvoiceID:        "in_789",
		AmountPaid:       59.90,
	})
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.PlanExpireAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), *reloaded.PlanExpireAt, time.Minute)

	var history models.PlanHistory
	require.NoError(t, db.First(&history, "user_id = ?", user.ID).Error)
	assert.Equal(t, plan.TierPrateleira, history.PlanName)
}

func TestHandleEvent_InvoiceWithoutSubscriptionIgnored(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())

	err := svc.HandleEvent(&SubscriptionEvent{
		Type:             EventInvoicePaid,
		StripeCustomerID: "cus_one_off",
	})
	assert.NoError(t, err)
}

func TestHandleEvent_CancelAtPeriodEnd(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())

	nextMonth := time.Now().AddDate(0, 1, 0)
	user := seedUser(t, db, plan.TierVitrine, &nextMonth)
	require.NoError(t, db.Model(user).Update("stripe_subscription_id", "sub_cancel").Error)

	periodEnd := time.Now().Add(10 * 24 * time.Hour)
	err := svc.HandleEvent(&SubscriptionEvent{
		Type:              EventSubscriptionUpdated,
		SubscriptionID:    "sub_cancel",
		CancelAtPeriodEnd: true,
		PeriodEnd:         periodEnd,
	})
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, "canceled_pending", reloaded.SubscriptionStatus)
	// the plan stays active until the paid period runs out
	require.NotNil(t, reloaded.PlanActive)
	assert.Equal(t, plan.TierVitrine, *reloaded.PlanActive)
	require.NotNil(t, reloaded.PlanExpireAt)
	assert.WithinDuration(t, periodEnd, *reloaded.PlanExpireAt, time.Second)
}

func TestHandleEvent_SubscriptionDeletedRevertsToFree(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())

	nextMonth := time.Now().AddDate(0, 1, 0)
	user := seedUser(t, db, plan.TierMercado, &nextMonth)
	require.NoError(t, db.Model(user).Update("stripe_subscription_id", "sub_gone").Error)

	err := svc.HandleEvent(&SubscriptionEvent{
		Type:           EventSubscriptionDeleted,
		SubscriptionID: "sub_gone",
	})
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.PlanActive)
	assert.Equal(t, plan.TierFree, *reloaded.PlanActive)
	assert.Equal(t, "canceled", reloaded.SubscriptionStatus)
	assert.Nil(t, reloaded.PlanExpireAt)

	var history models.PlanHistory
	require.NoError(t, db.First(&history, "user_id = ?", user.ID).Error)
	assert.Equal(t, plan.TierFree, history.PlanName)
}

func TestHandleEvent_UnknownSubscriptionIsTolerated(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())

	assert.NoError(t, svc.HandleEvent(&SubscriptionEvent{
		Type:           EventSubscriptionDeleted,
		SubscriptionID: "sub_never_seen",
	}))
	assert.NoError(t, svc.HandleEvent(&SubscriptionEvent{Type: "something_new"}))
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db, testConfig())
	user := seedFreeUser(t, db)

	_, err := svc.Subscribe(user, "plano-turbo")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}
