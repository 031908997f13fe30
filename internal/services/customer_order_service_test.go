package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCustomerOrderService(db *gorm.DB) *CustomerOrderService {
	pricing := NewPricingService(db)
	orders := NewOrderService(db, pricing, NewPlanService(db))
	return NewCustomerOrderService(db, testConfig(), pricing, orders)
}

func storefrontRequest(productID uuid.UUID, phone string) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Customer: dto.CustomerInput{Name: "Ana Costa", Phone: phone},
		Address: dto.AddressInput{
			Street:       "Av. Brasil",
			Number:       "400",
			Neighborhood: "Jardins",
			City:         "São Paulo",
			ZipCode:      "04500-000",
		},
		Items:         []dto.OrderItemInput{{ProductID: productID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodPix,
	}
}

func TestIdentify_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)

	_, err := svc.Identify(store.ID, &dto.IdentifyCustomerRequest{Name: "Jo", Phone: "11988887777"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Identify(store.ID, &dto.IdentifyCustomerRequest{Name: "João", Phone: "123"})
	assert.True(t, apperr.IsValidation(err))
}

func TestIdentify_UpsertAndToken(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)

	first, err := svc.Identify(store.ID, &dto.IdentifyCustomerRequest{
		Name: "Ana Costa", Phone: "(11) 98888-7777",
	})
	require.NoError(t, err)
	assert.True(t, first.Customer.IsNew)
	assert.Equal(t, "11988887777", first.Customer.Phone)
	assert.NotEmpty(t, first.Token)

	// same phone, different formatting: same customer, updated name
	second, err := svc.Identify(store.ID, &dto.IdentifyCustomerRequest{
		Name: "Ana C. Costa", Phone: "11988887777",
	})
	require.NoError(t, err)
	assert.False(t, second.Customer.IsNew)
	assert.Equal(t, first.Customer.ID, second.Customer.ID)
}

func TestIdentify_InactiveStore(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)
	require.NoError(t, db.Model(store).Update("status", models.StoreStatusInactive).Error)

	_, err := svc.Identify(store.ID, &dto.IdentifyCustomerRequest{Name: "Ana Costa", Phone: "11988887777"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCustomerCreateOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)
	product := seedProduct(t, db, store.ID, 32.50)

	resp, err := svc.CreateOrder(store.ID, storefrontRequest(product.ID, "11988887777"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 30, resp.EstimatedTime)

	order, ok := resp.Order.(*models.Order)
	require.True(t, ok)
	assert.Equal(t, "app", order.Origin)
	assert.InDelta(t, 32.50, order.Total, 0.001)
}

func TestCustomerCreateOrder_PaymentMethodNotAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)
	require.NoError(t, db.Model(store).Update("payment_methods", `["dinheiro"]`).Error)
	product := seedProduct(t, db, store.ID, 10)

	req := storefrontRequest(product.ID, "11988887777")
	req.PaymentMethod = models.PaymentMethodPix
	_, err := svc.CreateOrder(store.ID, req)
	assert.True(t, apperr.IsValidation(err))
}

// The cap is a count-then-insert check, not an atomic reservation: two
// simultaneous first-time orders at exactly the limit can both pass. The
// sequential boundary pinned here is the guaranteed behavior.
func TestCustomerCreateOrder_MonthlyCustomerCap(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)
	product := seedProduct(t, db, store.ID, 10)

	existingPhone := "11900000001"
	customers := make([]models.Customer, 0, freeTierMonthlyCustomerCap)
	for i := 0; i < freeTierMonthlyCustomerCap; i++ {
		customers = append(customers, models.Customer{
			ID:      uuid.New(),
			StoreID: store.ID,
			Name:    fmt.Sprintf("Cliente %d", i),
			Phone:   fmt.Sprintf("119%08d", i+1),
		})
	}
	require.NoError(t, db.CreateInBatches(customers, 50).Error)

	// a brand-new phone is over the cap
	_, err := svc.CreateOrder(store.ID, storefrontRequest(product.ID, "11977776666"))
	var ent *apperr.EntitlementError
	require.True(t, errors.As(err, &ent))
	assert.Equal(t, int64(freeTierMonthlyCustomerCap), ent.CurrentCount)
	assert.Equal(t, freeTierMonthlyCustomerCap, ent.Limit)

	// an existing phone is never blocked
	_, err = svc.CreateOrder(store.ID, storefrontRequest(product.ID, existingPhone))
	assert.NoError(t, err)
}

func TestCustomerCreateOrder_CapOnlyAppliesToFreeTier(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)

	nextWeek := time.Now().Add(7 * 24 * time.Hour)
	user := seedUser(t, db, plan.TierMercado, &nextWeek)
	store := seedStore(t, db, user.ID)
	product := seedProduct(t, db, store.ID, 10)

	customers := make([]models.Customer, 0, freeTierMonthlyCustomerCap)
	for i := 0; i < freeTierMonthlyCustomerCap; i++ {
		customers = append(customers, models.Customer{
			ID:      uuid.New(),
			StoreID: store.ID,
			Name:    fmt.Sprintf("Cliente %d", i),
			Phone:   fmt.Sprintf("119%08d", i+1),
		})
	}
	require.NoError(t, db.CreateInBatches(customers, 50).Error)

	_, err := svc.CreateOrder(store.ID, storefrontRequest(product.ID, "11977776666"))
	assert.NoError(t, err)
}

func TestCustomerOrderStatusAndCancel(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)
	product := seedProduct(t, db, store.ID, 10)

	resp, err := svc.CreateOrder(store.ID, storefrontRequest(product.ID, "11988887777"))
	require.NoError(t, err)
	order := resp.Order.(*models.Order)

	status, err := svc.OrderStatus(order.ID, order.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, status.Status)
	assert.Equal(t, 25, status.EstimatedTimeRemaining)
	assert.True(t, status.CanCancel)
	require.Len(t, status.History, 1)

	// a stranger's token sees nothing
	_, err = svc.OrderStatus(order.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, svc.CancelOrder(order.ID, order.CustomerID, "Mudei de ideia"))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusCanceled, reloaded.Status)
	assert.Equal(t, "customer", reloaded.CanceledBy)
	assert.Equal(t, "Mudei de ideia", reloaded.CanceledReason)
}

func TestCustomerCancel_OnlyWhileProcessing(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerOrderService(db)
	user := seedFreeUser(t, db)
	store := seedStore(t, db, user.ID)
	product := seedProduct(t, db, store.ID, 10)

	resp, err := svc.CreateOrder(store.ID, storefrontRequest(product.ID, "11988887777"))
	require.NoError(t, err)
	order := resp.Order.(*models.Order)

	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", models.OrderStatusPreparing).Error)

	err = svc.CancelOrder(order.ID, order.CustomerID, "")
	var ste *apperr.StateTransitionError
	require.True(t, errors.As(err, &ste))
	assert.Equal(t, models.OrderStatusPreparing, ste.From)

	status, err := svc.OrderStatus(order.ID, order.CustomerID)
	require.NoError(t, err)
	assert.False(t, status.CanCancel)
	assert.Equal(t, 15, status.EstimatedTimeRemaining)
}
