package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderItemDraft is a priced order line ready for persistence. Prices come
// exclusively from the live product record; whatever the client sent is gone
// by the time a draft exists.
type OrderItemDraft struct {
	ProductID  uuid.UUID
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
	Notes      string
	Options    datatypes.JSON
}

// CouponResult is the outcome of a coupon application. Err being set is a
// soft failure: the caller decides whether to proceed without the discount
// or surface the problem.
type CouponResult struct {
	Discount float64
	CouponID *uuid.UUID
	Err      error
}

// DeliveryFeeFunc computes the delivery fee for a store. The default
// implementation charges nothing; geofenced pricing plugs in here.
type DeliveryFeeFunc func(storeID uuid.UUID) float64

func FlatDeliveryFee(fee float64) DeliveryFeeFunc {
	return func(uuid.UUID) float64 { return fee }
}

// PricingService recomputes authoritative order pricing and applies coupons.
type PricingService struct {
	db          *gorm.DB
	DeliveryFee DeliveryFeeFunc
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db, DeliveryFee: FlatDeliveryFee(0)}
}

// ReconcileItems validates the requested items against store-owned products
// and returns server-priced drafts plus the subtotal. The batch ownership
// check runs before any pricing so a partially-valid request fails whole.
func (s *PricingService) ReconcileItems(items []dto.OrderItemInput, storeID uuid.UUID) ([]OrderItemDraft, float64, error) {
	if len(items) == 0 {
		return nil, 0, apperr.Validation("order must contain at least one item")
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, apperr.Validationf("invalid quantity for product %s", item.ProductID)
		}
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	var products []models.Product
	if err := s.db.Scopes(database.ForStore(storeID)).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, 0, apperr.Integrity("load products", err)
	}
	if len(products) != len(ids) {
		return nil, 0, apperr.Validation("one or more products were not found or do not belong to this store")
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		p := &products[i]
		if p.Status != models.ProductStatusActive {
			return nil, 0, apperr.Validationf("product %q is not available right now", p.Name)
		}
		byID[p.ID] = p
	}

	drafts := make([]OrderItemDraft, 0, len(items))
	var subtotal float64
	for _, item := range items {
		product := byID[item.ProductID]
		unit := product.UnitPrice()
		total := unit * float64(item.Quantity)
		subtotal += total
		drafts = append(drafts, OrderItemDraft{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unit,
			TotalPrice: total,
			Notes:      item.Notes,
			Options:    item.Options,
		})
	}

	return drafts, subtotal, nil
}

// ApplyCoupon looks up an active, in-window coupon for the store and computes
// the bounded discount. All rejections are soft: the zero-discount result
// carries the reason in Err and the caller picks the policy.
//
// The usage counter is incremented with an atomic conditional update so two
// concurrent redemptions cannot both consume the last use; the loser degrades
// to no discount.
func (s *PricingService) ApplyCoupon(code string, storeID uuid.UUID, subtotal float64) CouponResult {
	if code == "" {
		return CouponResult{}
	}

	now := time.Now()
	var coupon models.Coupon
	err := s.db.Scopes(database.ForStore(storeID)).
		Where("code = ? AND is_active = ?", code, true).
		Where("valid_from <= ? AND valid_until >= ?", now, now).
		First(&coupon).Error
	if err != nil {
		return CouponResult{Err: apperr.Validation("coupon invalid or expired")}
	}

	if coupon.MinOrderValue > 0 && subtotal < coupon.MinOrderValue {
		return CouponResult{Err: apperr.Validationf(
			"minimum order value not reached: order must be at least R$ %.2f", coupon.MinOrderValue)}
	}

	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return CouponResult{Err: apperr.Validation("coupon exhausted")}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		discount = subtotal * coupon.DiscountValue / 100
	default:
		discount = coupon.DiscountValue
	}
	if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
		discount = *coupon.MaxDiscountAmount
	}

	res := s.db.Model(&models.Coupon{}).
		Where("id = ?", coupon.ID).
		Where("usage_limit IS NULL OR usage_count < usage_limit").
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return CouponResult{Err: apperr.Integrity("increment coupon usage", res.Error)}
	}
	if res.RowsAffected == 0 {
		// Lost a concurrent redemption race for the last remaining use.
		return CouponResult{Err: apperr.Validation("coupon exhausted")}
	}

	return CouponResult{Discount: discount, CouponID: &coupon.ID}
}

// couponRejectionMessage formats the soft-failure reason for entry points
// that surface it instead of silently dropping the discount.
func couponRejectionMessage(code string, err error) string {
	return fmt.Sprintf("coupon %q not applied: %s", code, err.Error())
}
