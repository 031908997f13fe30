package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTier(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"known paid tier", TierVitrine, TierVitrine},
		{"free tier", TierFree, TierFree},
		{"legacy alias", "free", TierFree},
		{"empty id", "", TierFree},
		{"unknown id", "plan-enterprise", TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetTier(tt.id).ID)
		})
	}
}

func TestTierLimits(t *testing.T) {
	free := GetTier(TierFree)
	assert.Equal(t, 10, free.MaxProducts)
	assert.Equal(t, 3, free.MaxCategories)

	prateleira := GetTier(TierPrateleira)
	assert.Equal(t, 50, prateleira.MaxProducts)
	assert.Equal(t, 10, prateleira.MaxCategories)

	mercado := GetTier(TierMercado)
	assert.Equal(t, Unlimited, mercado.MaxProducts)
	assert.Equal(t, Unlimited, mercado.MaxCategories)
}

func TestHasFeature(t *testing.T) {
	assert.False(t, GetTier(TierFree).HasFeature(FeatureCoupons))
	assert.False(t, GetTier(TierVitrine).HasFeature(FeatureCoupons))
	assert.True(t, GetTier(TierPrateleira).HasFeature(FeatureCoupons))
	assert.True(t, GetTier(TierPrateleira).HasFeature(FeaturePromotions))

	// wildcard grants everything, including features no catalog entry names
	mercado := GetTier(TierMercado)
	assert.True(t, mercado.HasFeature(FeatureCoupons))
	assert.True(t, mercado.HasFeature("something_not_in_the_catalog"))
}

func TestRequiredTierFor(t *testing.T) {
	tier, ok := RequiredTierFor(FeatureCoupons)
	require.True(t, ok)
	assert.Equal(t, TierPrateleira, tier.ID)

	tier, ok = RequiredTierFor(FeatureCustomLink)
	require.True(t, ok)
	assert.Equal(t, TierVitrine, tier.ID)

	tier, ok = RequiredTierFor(FeatureBasicStore)
	require.True(t, ok)
	assert.Equal(t, TierFree, tier.ID)

	// only the wildcard grants unknown features
	tier, ok = RequiredTierFor("dedicated_account_manager")
	assert.False(t, ok)
	assert.Equal(t, TierMercado, tier.ID)
}

func TestIsPaid(t *testing.T) {
	assert.False(t, IsPaid(TierFree))
	assert.False(t, IsPaid("free"))
	assert.False(t, IsPaid(""))
	assert.False(t, IsPaid("plan-enterprise"))
	assert.True(t, IsPaid(TierVitrine))
	assert.True(t, IsPaid(TierMercado))
}

func TestAllOrdering(t *testing.T) {
	all := All()
	require.Len(t, all, 4)
	assert.Equal(t, TierFree, all[0].ID)
	assert.Equal(t, TierMercado, all[3].ID)
}
