package services

import (
	"math"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"gorm.io/gorm"
)

type ProductService struct {
	db    *gorm.DB
	plans *PlanService
}

func NewProductService(db *gorm.DB, plans *PlanService) *ProductService {
	return &ProductService{db: db, plans: plans}
}

func validProductStatus(status string) bool {
	switch status {
	case models.ProductStatusActive, models.ProductStatusInactive, models.ProductStatusOutOfStock:
		return true
	}
	return false
}

// Create inserts a product after the plan limit gate. The limit check and
// the insert are not atomic; concurrent creations can momentarily overshoot
// the limit by design of the backing flow.
func (s *ProductService) Create(req *dto.CreateProductRequest, storeID, userID uuid.UUID) (*models.Product, error) {
	if req.Name == "" {
		return nil, apperr.Validation("product name is required")
	}
	if req.Price <= 0 {
		return nil, apperr.Validation("price must be positive")
	}
	status := req.Status
	if status == "" {
		status = models.ProductStatusActive
	}
	if !validProductStatus(status) {
		return nil, apperr.Validationf("unknown product status %q", status)
	}

	check, err := s.plans.CheckCreateLimit(ResourceProduct, storeID, userID)
	if err != nil {
		return nil, err
	}
	if !check.CanCreate {
		return nil, &apperr.EntitlementError{
			Message:      "product limit reached for the current plan",
			CurrentCount: check.CurrentCount,
			Limit:        check.Limit,
			TierID:       check.TierID,
		}
	}

	productSlug := req.Slug
	if productSlug == "" {
		productSlug = slug.Make(req.Name)
	}

	product := models.Product{
		ID:            uuid.New(),
		StoreID:       storeID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          productSlug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		ImageURL:      req.ImageURL,
		Status:        status,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, apperr.Integrity("create product", err)
	}
	return &product, nil
}

func (s *ProductService) Get(productID, storeID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Scopes(database.ForStore(storeID)).First(&product, "id = ?", productID).Error
	if err != nil {
		return nil, apperr.NotFound("product")
	}
	return &product, nil
}

func (s *ProductService) List(q *dto.ProductListQuery, storeID uuid.UUID) ([]models.Product, *dto.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	query := s.db.Model(&models.Product{}).Scopes(database.ForStore(storeID))
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if q.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, apperr.Integrity("count products", err)
	}

	var products []models.Product
	err := query.Order("created_at DESC").Limit(q.Limit).Offset((q.Page - 1) * q.Limit).Find(&products).Error
	if err != nil {
		return nil, nil, apperr.Integrity("list products", err)
	}

	pages := int(math.Ceil(float64(total) / float64(q.Limit)))
	return products, &dto.Pagination{Total: total, Page: q.Page, Limit: q.Limit, Pages: pages}, nil
}

func (s *ProductService) Update(req *dto.UpdateProductRequest, productID, storeID uuid.UUID) (*models.Product, error) {
	product, err := s.Get(productID, storeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		if req.Slug == nil {
			updates["slug"] = slug.Make(*req.Name)
		}
	}
	if req.Slug != nil {
		updates["slug"] = slug.Make(*req.Slug)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperr.Validation("price must be positive")
		}
		updates["price"] = *req.Price
	}
	if req.DiscountPrice != nil {
		updates["discount_price"] = *req.DiscountPrice
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Status != nil {
		if !validProductStatus(*req.Status) {
			return nil, apperr.Validationf("unknown product status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return product, nil
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, apperr.Integrity("update product", err)
	}
	return s.Get(productID, storeID)
}

func (s *ProductService) Delete(productID, storeID uuid.UUID) error {
	res := s.db.Scopes(database.ForStore(storeID)).Delete(&models.Product{}, "id = ?", productID)
	if res.Error != nil {
		return apperr.Integrity("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

// SetFeatured toggles the storefront highlight. Gated by the promotions
// feature flag; the denial names the cheapest tier that unlocks it.
func (s *ProductService) SetFeatured(productID, storeID, userID uuid.UUID, featured bool) (*models.Product, error) {
	if !s.plans.HasFeature(userID, plan.FeaturePromotions) {
		required, _ := plan.RequiredTierFor(plan.FeaturePromotions)
		tier, _, _ := s.plans.ResolveEffectiveTier(userID)
		return nil, &apperr.EntitlementError{
			Message:         "featured products are not available on the current plan",
			RequiredFeature: plan.FeaturePromotions,
			RequiredTier:    required.Description,
			TierID:          tier.ID,
		}
	}

	product, err := s.Get(productID, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(product).Update("is_featured", featured).Error; err != nil {
		return nil, apperr.Integrity("update product featured flag", err)
	}
	product.IsFeatured = featured
	return product, nil
}
