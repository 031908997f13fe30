package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Insights aggregates the store owner's home-screen numbers. Revenue only
// counts orders that reached a completed state.
func (s *DashboardService) Insights(storeID uuid.UUID) (*dto.DashboardInsights, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)
	prevWeekStart := todayStart.AddDate(0, 0, -14)

	orders := func() *gorm.DB {
		return s.db.Model(&models.Order{}).Scopes(database.ForStore(storeID))
	}

	out := &dto.DashboardInsights{}

	if err := orders().Count(&out.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := orders().Where("created_at >= ?", todayStart).Count(&out.TodayOrders).Error; err != nil {
		return nil, err
	}
	if err := orders().Where("status = ?", models.OrderStatusProcessing).Count(&out.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := orders().Where("created_at >= ?", weekStart).Count(&out.WeekOrders).Error; err != nil {
		return nil, err
	}

	var prevWeek int64
	if err := orders().Where("created_at >= ? AND created_at < ?", prevWeekStart, weekStart).Count(&prevWeek).Error; err != nil {
		return nil, err
	}
	if prevWeek > 0 {
		out.WeekGrowthPct = float64(out.WeekOrders-prevWeek) / float64(prevWeek) * 100
	} else if out.WeekOrders > 0 {
		out.WeekGrowthPct = 100
	}

	revenue := func(q *gorm.DB) (float64, error) {
		var total *float64
		err := q.Where("status = ?", models.OrderStatusCompleted).
			Select("SUM(total)").Scan(&total).Error
		if err != nil || total == nil {
			return 0, err
		}
		return *total, nil
	}

	var err error
	if out.TotalRevenue, err = revenue(orders()); err != nil {
		return nil, err
	}
	if out.TodayRevenue, err = revenue(orders().Where("created_at >= ?", todayStart)); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Customer{}).Scopes(database.ForStore(storeID)).
		Count(&out.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Scopes(database.ForStore(storeID)).
		Where("status = ?", models.ProductStatusActive).
		Count(&out.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Scopes(database.ForStore(storeID)).
		Where("is_featured = ?", true).
		Count(&out.FeaturedProducts).Error; err != nil {
		return nil, err
	}

	return out, nil
}
