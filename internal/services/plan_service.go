package services

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"gorm.io/gorm"
)

const (
	ResourceProduct  = "product"
	ResourceCategory = "category"
)

// PlanService resolves a user's effective entitlements at request time.
// Expiry is always re-checked here, never left to a background job.
type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// ResolveEffectiveTier returns the user's effective tier. When a paid tier
// has expired it issues the downgrade write (plan_active='plan-free',
// plan_expire_at=NULL) and reports downgraded=true; repeated calls are
// no-ops. Reading failures fail closed to the free tier.
func (s *PlanService) ResolveEffectiveTier(userID uuid.UUID) (tier plan.Tier, downgraded bool, err error) {
	var user models.User
	if err := s.db.Select("id", "plan_active", "plan_expire_at").First(&user, "id = ?", userID).Error; err != nil {
		slog.Error("plan lookup failed, falling back to free tier", "user_id", userID.String(), "error", err.Error())
		return plan.GetTier(plan.TierFree), false, nil
	}

	active := ""
	if user.PlanActive != nil {
		active = *user.PlanActive
	}

	if plan.IsPaid(active) && user.PlanExpireAt != nil && time.Now().After(*user.PlanExpireAt) {
		updates := map[string]interface{}{
			"plan_active":    plan.TierFree,
			"plan_expire_at": nil,
		}
		if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			// The downgrade write failing must not grant the expired tier.
			slog.Error("plan downgrade write failed", "user_id", userID.String(), "error", err.Error())
		} else {
			slog.Info("expired plan reverted to free", "user_id", userID.String(), "previous_plan", active)
		}
		return plan.GetTier(plan.TierFree), true, nil
	}

	return plan.GetTier(active), false, nil
}

// CheckCreateLimit counts existing rows of the resource scoped to the store
// and compares against the effective tier's limit. canCreate uses strict
// less-than: a store at exactly the limit cannot create the next one.
func (s *PlanService) CheckCreateLimit(resource string, storeID, userID uuid.UUID) (*dto.LimitCheckResponse, error) {
	tier, _, err := s.ResolveEffectiveTier(userID)
	if err != nil {
		return nil, err
	}

	var limit int
	var count int64
	switch resource {
	case ResourceProduct:
		limit = tier.MaxProducts
		err = s.db.Model(&models.Product{}).Scopes(database.ForStore(storeID)).Count(&count).Error
	case ResourceCategory:
		limit = tier.MaxCategories
		err = s.db.Model(&models.ProductCategory{}).Scopes(database.ForStore(storeID)).Count(&count).Error
	default:
		return nil, apperr.Validationf("unknown resource %q", resource)
	}
	if err != nil {
		return nil, apperr.Integrity("count "+resource, err)
	}

	return &dto.LimitCheckResponse{
		CurrentCount: count,
		Limit:        limit,
		CanCreate:    limit == plan.Unlimited || count < int64(limit),
		TierID:       tier.ID,
	}, nil
}

// HasFeature reports whether the user's effective tier grants the feature.
// Any lookup failure is an explicit deny.
func (s *PlanService) HasFeature(userID uuid.UUID, feature string) bool {
	tier, _, err := s.ResolveEffectiveTier(userID)
	if err != nil {
		return false
	}
	return tier.HasFeature(feature)
}

// GetPlanInfo returns the subscription overview shown on the merchant panel.
func (s *PlanService) GetPlanInfo(userID uuid.UUID) (*dto.PlanInfoResponse, error) {
	var user models.User
	if err := s.db.Select("id", "plan_active", "plan_expire_at").First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperr.NotFound("user")
	}

	active := ""
	if user.PlanActive != nil {
		active = *user.PlanActive
	}
	tier := plan.GetTier(active)

	status := "active"
	var daysRemaining *int
	if plan.IsPaid(tier.ID) && user.PlanExpireAt != nil {
		if time.Now().After(*user.PlanExpireAt) {
			status = "expired"
		} else {
			d := int(math.Ceil(time.Until(*user.PlanExpireAt).Hours() / 24))
			daysRemaining = &d
		}
	}

	return &dto.PlanInfoResponse{
		PlanName:      tier.ID,
		Description:   tier.Description,
		Status:        status,
		ExpiresAt:     user.PlanExpireAt,
		DaysRemaining: daysRemaining,
		Limits: dto.PlanLimits{
			MaxProducts:   tier.MaxProducts,
			MaxCategories: tier.MaxCategories,
		},
		Features: tier.Features,
	}, nil
}
