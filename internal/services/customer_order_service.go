package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/config"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// estimated preparation minutes per status, shown to customers polling an
// order.
var estimatedMinutes = map[string]int{
	models.OrderStatusProcessing: 25,
	models.OrderStatusPreparing:  15,
	models.OrderStatusEnRoute:    10,
}

// CustomerOrderService is the storefront entry point: customers identify by
// phone, place orders against an active store and track or cancel them with
// a scoped token.
type CustomerOrderService struct {
	db      *gorm.DB
	cfg     *config.Config
	pricing *PricingService
	orders  *OrderService
}

func NewCustomerOrderService(db *gorm.DB, cfg *config.Config, pricing *PricingService, orders *OrderService) *CustomerOrderService {
	return &CustomerOrderService{db: db, cfg: cfg, pricing: pricing, orders: orders}
}

// customerToken issues a 30-day JWT scoped to one customer of one store.
func (s *CustomerOrderService) customerToken(customerID, storeID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub":      customerID.String(),
		"store_id": storeID.String(),
		"type":     "customer",
		"exp":      time.Now().Add(s.cfg.CustomerTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// activeStore loads a store only when it exists and is active; inactive
// stores are invisible to the storefront.
func (s *CustomerOrderService) activeStore(storeID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := s.db.First(&store, "id = ? AND status = ?", storeID, models.StoreStatusActive).Error
	if err != nil {
		return nil, apperr.NotFound("store")
	}
	return &store, nil
}

// Identify upserts the customer by (store, phone) and returns a token plus
// saved addresses and the three most recent orders for quick reordering.
func (s *CustomerOrderService) Identify(storeID uuid.UUID, req *dto.IdentifyCustomerRequest) (*dto.IdentifyCustomerResponse, error) {
	if len(req.Name) < 3 {
		return nil, apperr.Validation("name must have at least 3 characters")
	}
	phone := NormalizePhone(req.Phone)
	if len(phone) < 10 {
		return nil, apperr.Validation("phone must have at least 10 digits")
	}

	if _, err := s.activeStore(storeID); err != nil {
		return nil, err
	}

	var deviceID *string
	if req.DeviceInfo != nil && req.DeviceInfo.DeviceID != "" {
		deviceID = &req.DeviceInfo.DeviceID
	}

	isNew := false
	var customer models.Customer
	err := s.db.Scopes(database.ForStore(storeID)).Where("phone = ?", phone).First(&customer).Error
	if err != nil {
		customer = models.Customer{
			ID:       uuid.New(),
			StoreID:  storeID,
			Name:     req.Name,
			Phone:    phone,
			DeviceID: deviceID,
		}
		if err := s.db.Create(&customer).Error; err != nil {
			return nil, apperr.Integrity("create customer", err)
		}
		isNew = true
	} else if customer.Name != req.Name {
		s.db.Model(&customer).Update("name", req.Name)
	}

	token, err := s.customerToken(customer.ID, storeID)
	if err != nil {
		return nil, apperr.Integrity("sign customer token", err)
	}

	var addresses []models.Address
	s.db.Where("customer_id = ?", customer.ID).Order("created_at DESC").Find(&addresses)

	var recent []models.Order
	s.db.Preload("Items").Where("customer_id = ?", customer.ID).
		Order("created_at DESC").Limit(3).Find(&recent)

	return &dto.IdentifyCustomerResponse{
		Customer: dto.IdentifiedCustomer{
			ID:    customer.ID,
			Name:  req.Name,
			Phone: phone,
			IsNew: isNew,
		},
		Addresses:    addresses,
		RecentOrders: recent,
		Token:        token,
	}, nil
}

// paymentMethodAccepted checks the order's payment method against the
// store's configured list.
func paymentMethodAccepted(store *models.Store, method string) bool {
	var methods []string
	if len(store.PaymentMethods) > 0 {
		if err := json.Unmarshal(store.PaymentMethods, &methods); err != nil {
			return false
		}
	}
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// CreateOrder places a storefront order. Unlike the owner entry point, a
// rejected coupon degrades silently to no discount; everything else
// (ownership, price reconciliation, the free-tier customer cap of the store
// owner) is enforced identically.
func (s *CustomerOrderService) CreateOrder(storeID uuid.UUID, req *dto.CreateOrderRequest) (*dto.CustomerOrderResponse, error) {
	store, err := s.activeStore(storeID)
	if err != nil {
		return nil, err
	}

	if !paymentMethodAccepted(store, req.PaymentMethod) {
		return nil, apperr.Validationf("payment method %q is not accepted by this store", req.PaymentMethod)
	}

	phone := NormalizePhone(req.Customer.Phone)
	if err := s.orders.checkCustomerCap(storeID, store.UserID, phone); err != nil {
		return nil, err
	}

	var deviceID *string
	if req.DeviceInfo != nil && req.DeviceInfo.DeviceID != "" {
		deviceID = &req.DeviceInfo.DeviceID
	}

	customerID, err := s.orders.upsertCustomer(storeID, req.Customer, deviceID)
	if err != nil {
		return nil, err
	}

	addressID, err := s.orders.createAddress(customerID, req.Address)
	if err != nil {
		return nil, err
	}

	drafts, subtotal, err := s.pricing.ReconcileItems(req.Items, storeID)
	if err != nil {
		return nil, err
	}

	coupon := s.pricing.ApplyCoupon(req.CouponCode, storeID, subtotal)
	if coupon.Err != nil {
		slog.Info(couponRejectionMessage(req.CouponCode, coupon.Err), "store_id", storeID.String())
	}

	var deviceInfo datatypes.JSON
	if req.DeviceInfo != nil {
		if b, err := json.Marshal(req.DeviceInfo); err == nil {
			deviceInfo = b
		}
	}

	deliveryFee := s.pricing.DeliveryFee(storeID)
	order := &models.Order{
		ID:            uuid.New(),
		StoreID:       storeID,
		CustomerID:    customerID,
		AddressID:     addressID,
		CouponID:      coupon.CouponID,
		Status:        models.OrderStatusProcessing,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Discount:      coupon.Discount,
		Total:         subtotal + deliveryFee - coupon.Discount,
		ChangeFor:     req.ChangeFor,
		Notes:         req.Notes,
		Origin:        "app",
		DeviceInfo:    deviceInfo,
	}

	if err := s.orders.persistOrder(order, drafts); err != nil {
		return nil, err
	}

	full, err := s.orders.reload(order.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.customerToken(customerID, storeID)
	if err != nil {
		return nil, apperr.Integrity("sign customer token", err)
	}

	return &dto.CustomerOrderResponse{
		Message:       "Pedido criado com sucesso",
		Order:         full,
		OrderID:       order.ID,
		EstimatedTime: 30,
		Token:         token,
	}, nil
}

// OrderStatus returns the live status, audit trail and a rough remaining
// time for a customer's own order.
func (s *CustomerOrderService) OrderStatus(orderID, customerID uuid.UUID) (*dto.OrderStatusResponse, error) {
	var order models.Order
	err := s.db.Preload("History").First(&order, "id = ? AND customer_id = ?", orderID, customerID).Error
	if err != nil {
		return nil, apperr.NotFound("order")
	}

	history := make([]dto.StatusHistoryEntry, len(order.History))
	for i, h := range order.History {
		history[i] = dto.StatusHistoryEntry{Status: h.Status, Notes: h.Notes, CreatedAt: h.CreatedAt}
	}

	return &dto.OrderStatusResponse{
		OrderID:                order.ID,
		Status:                 order.Status,
		PaymentStatus:          order.PaymentStatus,
		EstimatedTimeRemaining: estimatedMinutes[order.Status],
		History:                history,
		CanCancel:              order.Status == models.OrderStatusProcessing,
	}, nil
}

// CancelOrder cancels a customer's own order. Only orders still exactly in
// em_processamento may be cancelled from the storefront; anything further
// along is rejected, not ignored.
func (s *CustomerOrderService) CancelOrder(orderID, customerID uuid.UUID, reason string) error {
	var order models.Order
	err := s.db.First(&order, "id = ? AND customer_id = ?", orderID, customerID).Error
	if err != nil {
		return apperr.NotFound("order")
	}

	if order.Status != models.OrderStatusProcessing {
		return &apperr.StateTransitionError{From: order.Status, To: models.OrderStatusCanceled}
	}

	if reason == "" {
		reason = "Cancelado pelo cliente"
	}
	updates := map[string]interface{}{
		"status":          models.OrderStatusCanceled,
		"canceled_by":     "customer",
		"canceled_reason": reason,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return apperr.Integrity("cancel order", err)
	}

	s.orders.appendHistory(orderID, models.OrderStatusCanceled, reason)
	return nil
}
