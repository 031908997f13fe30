package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/config"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the whole test on one in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTAccessExpiry:     15 * time.Minute,
		JWTRefreshExpiry:    7 * 24 * time.Hour,
		CustomerTokenExpiry: 30 * 24 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, planID string, expireAt *time.Time) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		Password:     "irrelevant",
		Name:         "Dona Maria",
		PlanExpireAt: expireAt,
	}
	if planID != "" {
		user.PlanActive = &planID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedFreeUser(t *testing.T, db *gorm.DB) *models.User {
	return seedUser(t, db, plan.TierFree, nil)
}

func seedStore(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Store {
	t.Helper()

	store := &models.Store{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           "Cantina da Praça",
		Slug:           "cantina-" + uuid.NewString()[:8],
		Status:         models.StoreStatusActive,
		PaymentMethods: datatypes.JSON(`["pix","dinheiro","cartao"]`),
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    "Marmita " + uuid.NewString()[:8],
		Slug:    "marmita-" + uuid.NewString()[:8],
		Price:   price,
		Status:  models.ProductStatusActive,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()

	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = time.Now().Add(-time.Hour)
	}
	if coupon.ValidUntil.IsZero() {
		coupon.ValidUntil = time.Now().Add(time.Hour)
	}
	coupon.IsActive = true
	require.NoError(t, db.Create(coupon).Error)
	return coupon
}
