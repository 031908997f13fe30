// Package plan holds the static plan catalog: tier limits, feature flags
// and the feature-to-tier reverse index. The catalog is immutable after
// package init; all access goes through pure lookup functions.
package plan

// Unlimited marks a limit with no cap.
const Unlimited = -1

// FeatureAll is the wildcard granting every feature.
const FeatureAll = "all"

const (
	FeatureBasicStore          = "basic_store"
	FeatureWhatsAppIntegration = "whatsapp_integration"
	FeatureCustomLink          = "custom_link"
	FeatureBasicSupport        = "basic_support"
	FeaturePremiumSupport      = "premium_support"
	FeatureBasicReports        = "basic_reports"
	FeaturePaymentIntegration  = "payment_integration"
	FeatureCustomThemeBasic    = "custom_theme_basic"
	FeatureCustomThemeAdvanced = "custom_theme_advanced"
	FeatureCoupons             = "coupons"
	FeaturePromotions          = "promotions"
)

const (
	TierFree       = "plan-free"
	TierVitrine    = "plan-vitrine"
	TierPrateleira = "plan-prateleira"
	TierMercado    = "plan-mercado"
)

// Tier is one entry of the plan catalog.
type Tier struct {
	ID            string
	MaxProducts   int
	MaxCategories int
	Features      []string
	Description   string
}

// HasFeature reports whether the tier grants the feature, honoring the
// "all" wildcard.
func (t Tier) HasFeature(feature string) bool {
	for _, f := range t.Features {
		if f == FeatureAll || f == feature {
			return true
		}
	}
	return false
}

var tiers = map[string]Tier{
	TierFree: {
		ID:            TierFree,
		MaxProducts:   10,
		MaxCategories: 3,
		Features:      []string{FeatureBasicStore, FeatureWhatsAppIntegration},
		Description:   "Plano Gratuito",
	},
	TierVitrine: {
		ID:            TierVitrine,
		MaxProducts:   20,
		MaxCategories: 5,
		Features: []string{
			FeatureBasicStore, FeatureWhatsAppIntegration, FeatureCustomLink,
			FeatureBasicSupport, FeatureCustomThemeBasic,
		},
		Description: "Plano Vitrine",
	},
	TierPrateleira: {
		ID:            TierPrateleira,
		MaxProducts:   50,
		MaxCategories: 10,
		Features: []string{
			FeatureBasicStore, FeatureWhatsAppIntegration, FeatureCustomLink,
			FeaturePremiumSupport, FeatureBasicReports, FeaturePaymentIntegration,
			FeatureCustomThemeAdvanced, FeatureCoupons, FeaturePromotions,
		},
		Description: "Plano Prateleira",
	},
	TierMercado: {
		ID:            TierMercado,
		MaxProducts:   Unlimited,
		MaxCategories: Unlimited,
		Features:      []string{FeatureAll},
		Description:   "Plano Mercado",
	},
}

// tierOrder lists tiers cheapest-first, used to resolve the minimal tier
// unlocking a feature.
var tierOrder = []string{TierFree, TierVitrine, TierPrateleira, TierMercado}

// featureIndex maps feature -> minimal tier unlocking it, precomputed once
// instead of scanning the catalog on every denial.
var featureIndex = buildFeatureIndex()

func buildFeatureIndex() map[string]Tier {
	idx := make(map[string]Tier)
	for _, id := range tierOrder {
		t := tiers[id]
		for _, f := range t.Features {
			if f == FeatureAll {
				continue
			}
			if _, ok := idx[f]; !ok {
				idx[f] = t
			}
		}
	}
	return idx
}

// GetTier resolves a stored plan id to its tier. Unknown or empty ids
// (including the legacy "free" alias) resolve to the free tier.
func GetTier(id string) Tier {
	if id == "free" || id == "" {
		return tiers[TierFree]
	}
	if t, ok := tiers[id]; ok {
		return t
	}
	return tiers[TierFree]
}

// RequiredTierFor returns the cheapest tier that unlocks the feature. The
// boolean is false when no tier below Mercado grants it explicitly.
func RequiredTierFor(feature string) (Tier, bool) {
	t, ok := featureIndex[feature]
	if !ok {
		return tiers[TierMercado], false
	}
	return t, true
}

// All returns the catalog tiers in price order.
func All() []Tier {
	out := make([]Tier, 0, len(tierOrder))
	for _, id := range tierOrder {
		out = append(out, tiers[id])
	}
	return out
}

// IsPaid reports whether the id names a paid tier.
func IsPaid(id string) bool {
	return id != "" && id != "free" && id != TierFree && tiers[id].ID != ""
}
