package services

import (
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"gorm.io/gorm"
)

type CategoryService struct {
	db    *gorm.DB
	plans *PlanService
}

func NewCategoryService(db *gorm.DB, plans *PlanService) *CategoryService {
	return &CategoryService{db: db, plans: plans}
}

func (s *CategoryService) Create(req *dto.CategoryRequest, storeID, userID uuid.UUID) (*models.ProductCategory, error) {
	if req.Name == "" {
		return nil, apperr.Validation("category name is required")
	}

	check, err := s.plans.CheckCreateLimit(ResourceCategory, storeID, userID)
	if err != nil {
		return nil, err
	}
	if !check.CanCreate {
		return nil, &apperr.EntitlementError{
			Message:      "category limit reached for the current plan",
			CurrentCount: check.CurrentCount,
			Limit:        check.Limit,
			TierID:       check.TierID,
		}
	}

	category := models.ProductCategory{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperr.Integrity("create category", err)
	}
	return &category, nil
}

func (s *CategoryService) List(storeID uuid.UUID) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	err := s.db.Scopes(database.ForStore(storeID)).
		Order("sort_order ASC, created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, apperr.Integrity("list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Update(req *dto.CategoryRequest, categoryID, storeID uuid.UUID) (*models.ProductCategory, error) {
	var category models.ProductCategory
	err := s.db.Scopes(database.ForStore(storeID)).First(&category, "id = ?", categoryID).Error
	if err != nil {
		return nil, apperr.NotFound("category")
	}

	updates := map[string]interface{}{
		"description": req.Description,
		"sort_order":  req.SortOrder,
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if err := s.db.Model(&category).Updates(updates).Error; err != nil {
		return nil, apperr.Integrity("update category", err)
	}
	return &category, nil
}

func (s *CategoryService) Delete(categoryID, storeID uuid.UUID) error {
	// Products keep their rows; they just lose the category reference.
	if err := s.db.Model(&models.Product{}).
		Scopes(database.ForStore(storeID)).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error; err != nil {
		return apperr.Integrity("detach category products", err)
	}

	res := s.db.Scopes(database.ForStore(storeID)).Delete(&models.ProductCategory{}, "id = ?", categoryID)
	if res.Error != nil {
		return apperr.Integrity("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category")
	}
	return nil
}
