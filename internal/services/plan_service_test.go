package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEffectiveTier_ExpiredPlanDowngrades(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	yesterday := time.Now().Add(-24 * time.Hour)
	user := seedUser(t, db, plan.TierVitrine, &yesterday)

	tier, downgraded, err := svc.ResolveEffectiveTier(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.TierFree, tier.ID)
	assert.True(t, downgraded)

	// the downgrade must be persisted
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.PlanActive)
	assert.Equal(t, plan.TierFree, *reloaded.PlanActive)
	assert.Nil(t, reloaded.PlanExpireAt)

	// idempotent: the second resolution sees a clean free plan
	tier, downgraded, err = svc.ResolveEffectiveTier(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.TierFree, tier.ID)
	assert.False(t, downgraded)
}

func TestResolveEffectiveTier_ActivePaidPlan(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	nextWeek := time.Now().Add(7 * 24 * time.Hour)
	user := seedUser(t, db, plan.TierPrateleira, &nextWeek)

	tier, downgraded, err := svc.ResolveEffectiveTier(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.TierPrateleira, tier.ID)
	assert.False(t, downgraded)
}

func TestResolveEffectiveTier_MissingUserFailsClosed(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	tier, downgraded, err := svc.ResolveEffectiveTier(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, plan.TierFree, tier.ID)
	assert.False(t, downgraded)
}

func TestCheckCreateLimit_StrictBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)

	for i := 0; i < 9; i++ {
		seedProduct(t, db, store.ID, 10)
	}

	check, err := svc.CheckCreateLimit(ResourceProduct, store.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, check.CanCreate)
	assert.Equal(t, int64(9), check.CurrentCount)
	assert.Equal(t, 10, check.Limit)

	// exactly at the limit: strict less-than denies the next create
	seedProduct(t, db, store.ID, 10)
	check, err = svc.CheckCreateLimit(ResourceProduct, store.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, check.CanCreate)
	assert.Equal(t, int64(10), check.CurrentCount)
	assert.Equal(t, plan.TierFree, check.TierID)
}

func TestCheckCreateLimit_UnlimitedTier(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	nextWeek := time.Now().Add(7 * 24 * time.Hour)
	user := seedUser(t, db, plan.TierMercado, &nextWeek)
	store := seedStore(t, db, user.ID)

	for i := 0; i < 15; i++ {
		seedProduct(t, db, store.ID, 10)
	}

	check, err := svc.CheckCreateLimit(ResourceProduct, store.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, check.CanCreate)
	assert.Equal(t, plan.Unlimited, check.Limit)
}

func TestCheckCreateLimit_UnknownResource(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)

	_, err := svc.CheckCreateLimit("warehouse", store.ID, user.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestHasFeature(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	free := seedFreeUser(t, db)
	nextWeek := time.Now().Add(7 * 24 * time.Hour)
	prateleira := seedUser(t, db, plan.TierPrateleira, &nextWeek)

	assert.False(t, svc.HasFeature(free.ID, plan.FeatureCoupons))
	assert.True(t, svc.HasFeature(prateleira.ID, plan.FeatureCoupons))

	// expired paid plan loses gated features immediately
	yesterday := time.Now().Add(-time.Hour)
	expired := seedUser(t, db, plan.TierPrateleira, &yesterday)
	assert.False(t, svc.HasFeature(expired.ID, plan.FeatureCoupons))
}

func TestGetPlanInfo(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)

	nextWeek := time.Now().Add(7 * 24 * time.Hour)
	user := seedUser(t, db, plan.TierVitrine, &nextWeek)

	info, err := svc.GetPlanInfo(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.TierVitrine, info.PlanName)
	assert.Equal(t, "active", info.Status)
	require.NotNil(t, info.DaysRemaining)
	assert.InDelta(t, 7, *info.DaysRemaining, 1)
	assert.Equal(t, 20, info.Limits.MaxProducts)

	_, err = svc.GetPlanInfo(uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
