package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"gorm.io/gorm"
)

// StoreService manages merchant storefronts: one per user, globally unique
// slug.
type StoreService struct {
	db *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

// uniqueSlug slugifies the candidate and, on collision, appends a timestamp
// fragment instead of failing the request.
func (s *StoreService) uniqueSlug(candidate string, excludeID uuid.UUID) string {
	base := slug.Make(candidate)
	if base == "" {
		base = "loja"
	}

	var count int64
	q := s.db.Model(&models.Store{}).Where("slug = ?", base)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()%1000000)
}

func (s *StoreService) Create(req *dto.CreateStoreRequest, userID uuid.UUID) (*models.Store, error) {
	if req.Name == "" {
		return nil, apperr.Validation("store name is required")
	}

	var existing models.Store
	if err := s.db.First(&existing, "user_id = ?", userID).Error; err == nil {
		return nil, apperr.Validation("user already has a registered store")
	}

	slugSource := req.Slug
	if slugSource == "" {
		slugSource = req.Name
	}

	paymentMethods, _ := json.Marshal(req.PaymentMethods)

	store := models.Store{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           req.Name,
		Slug:           s.uniqueSlug(slugSource, uuid.Nil),
		Address:        req.Address,
		Neighborhood:   req.Neighborhood,
		City:           req.City,
		LogoURL:        req.LogoURL,
		BannerURL:      req.BannerURL,
		Theme:          req.Theme,
		PaymentMethods: paymentMethods,
		BusinessHours:  req.BusinessHours,
		Status:         models.StoreStatusActive,
	}
	if err := s.db.Create(&store).Error; err != nil {
		return nil, apperr.Integrity("create store", err)
	}
	return &store, nil
}

func (s *StoreService) GetByUser(userID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, "user_id = ?", userID).Error; err != nil {
		return nil, apperr.NotFound("store")
	}
	return &store, nil
}

// GetBySlug serves the public storefront; only active stores resolve.
func (s *StoreService) GetBySlug(storeSlug string) (*models.Store, error) {
	var store models.Store
	err := s.db.First(&store, "slug = ? AND status = ?", storeSlug, models.StoreStatusActive).Error
	if err != nil {
		return nil, apperr.NotFound("store")
	}
	return &store, nil
}

func (s *StoreService) Update(req *dto.UpdateStoreRequest, userID uuid.UUID) (*models.Store, error) {
	store, err := s.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = s.uniqueSlug(*req.Slug, store.ID)
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Neighborhood != nil {
		updates["neighborhood"] = *req.Neighborhood
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.BannerURL != nil {
		updates["banner_url"] = *req.BannerURL
	}
	if len(req.Theme) > 0 {
		updates["theme"] = req.Theme
	}
	if req.PaymentMethods != nil {
		b, _ := json.Marshal(req.PaymentMethods)
		updates["payment_methods"] = b
	}
	if len(req.BusinessHours) > 0 {
		updates["business_hours"] = req.BusinessHours
	}

	if len(updates) == 0 {
		return store, nil
	}
	if err := s.db.Model(store).Updates(updates).Error; err != nil {
		return nil, apperr.Integrity("update store", err)
	}
	return s.GetByUser(userID)
}

func (s *StoreService) SetStatus(status string, userID uuid.UUID) (*models.Store, error) {
	if status != models.StoreStatusActive && status != models.StoreStatusInactive {
		return nil, apperr.Validation(`status must be "active" or "inactive"`)
	}

	store, err := s.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(store).Update("status", status).Error; err != nil {
		return nil, apperr.Integrity("update store status", err)
	}
	store.Status = status
	return store, nil
}
