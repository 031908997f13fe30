package services

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/database"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/pedeai/pedeai-backend/internal/plan"
	"gorm.io/gorm"
)

// freeTierMonthlyCustomerCap limits how many *new* customers a free-tier
// store may register per calendar month. Orders from already-known phones
// are never blocked by it.
const freeTierMonthlyCustomerCap = 100

// OrderService is the store-owner entry point for the order lifecycle:
// creation, status transitions, payment proof and payment confirmation.
type OrderService struct {
	db      *gorm.DB
	pricing *PricingService
	plans   *PlanService
}

func NewOrderService(db *gorm.DB, pricing *PricingService, plans *PlanService) *OrderService {
	return &OrderService{db: db, pricing: pricing, plans: plans}
}

// storeIDForUser resolves the caller's single store.
func (s *OrderService) storeIDForUser(userID uuid.UUID) (uuid.UUID, error) {
	var store models.Store
	if err := s.db.Select("id").First(&store, "user_id = ?", userID).Error; err != nil {
		return uuid.Nil, apperr.NotFound("store")
	}
	return store.ID, nil
}

// loadOwnedOrder fetches an order scoped to a store owned by the user.
// Orders of other tenants are indistinguishable from missing ones.
func (s *OrderService) loadOwnedOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	storeID, err := s.storeIDForUser(userID)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := s.db.Scopes(database.ForStore(storeID)).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, apperr.NotFound("order")
	}
	return &order, nil
}

// NormalizePhone strips everything but digits so (11) 98888-7777 and
// 11988887777 identify the same customer.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkCustomerCap enforces the free-tier rolling monthly new-customer cap.
// The check-then-insert sequence is not atomic; see enforceCustomerCap
// callers for the accepted race.
func (s *OrderService) checkCustomerCap(storeID, userID uuid.UUID, phone string) error {
	tier, _, err := s.plans.ResolveEffectiveTier(userID)
	if err != nil || tier.ID != plan.TierFree {
		return err
	}

	// Existing customers never count against the cap.
	var existing int64
	if err := s.db.Model(&models.Customer{}).
		Scopes(database.ForStore(storeID)).
		Where("phone = ?", phone).
		Count(&existing).Error; err != nil {
		return apperr.Integrity("check existing customer", err)
	}
	if existing > 0 {
		return nil
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var count int64
	if err := s.db.Model(&models.Customer{}).
		Scopes(database.ForStore(storeID)).
		Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
		Count(&count).Error; err != nil {
		return apperr.Integrity("count monthly customers", err)
	}

	if count >= freeTierMonthlyCustomerCap {
		return &apperr.EntitlementError{
			Message:      "monthly limit of 100 new customers reached for the free plan",
			CurrentCount: count,
			Limit:        freeTierMonthlyCustomerCap,
			TierID:       tier.ID,
		}
	}
	return nil
}

// upsertCustomer finds or creates the customer keyed by (store, phone),
// refreshing the display name when it changed.
func (s *OrderService) upsertCustomer(storeID uuid.UUID, in dto.CustomerInput, deviceID *string) (uuid.UUID, error) {
	phone := NormalizePhone(in.Phone)

	var existing models.Customer
	err := s.db.Scopes(database.ForStore(storeID)).Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		if existing.Name != in.Name && in.Name != "" {
			s.db.Model(&existing).Update("name", in.Name)
		}
		return existing.ID, nil
	}

	customer := models.Customer{
		ID:       uuid.New(),
		StoreID:  storeID,
		Name:     in.Name,
		Phone:    phone,
		Email:    in.Email,
		DeviceID: deviceID,
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return uuid.Nil, apperr.Integrity("create customer", err)
	}
	return customer.ID, nil
}

func (s *OrderService) createAddress(customerID uuid.UUID, in dto.AddressInput) (uuid.UUID, error) {
	address := models.Address{
		ID:             uuid.New(),
		CustomerID:     customerID,
		Street:         in.Street,
		Number:         in.Number,
		Complement:     in.Complement,
		Neighborhood:   in.Neighborhood,
		City:           in.City,
		ZipCode:        in.ZipCode,
		ReferencePoint: in.ReferencePoint,
	}
	if err := s.db.Create(&address).Error; err != nil {
		return uuid.Nil, apperr.Integrity("create address", err)
	}
	return address.ID, nil
}

// persistOrder writes the order header, its items and the initial history
// row. On item-insert failure the header is deleted again (compensating
// delete rather than a transaction, matching the saga the flow was designed
// as); a failed compensation is logged loudly instead of swallowed.
func (s *OrderService) persistOrder(order *models.Order, drafts []OrderItemDraft) error {
	if err := s.db.Create(order).Error; err != nil {
		return apperr.Integrity("create order", err)
	}

	items := make([]models.OrderItem, len(drafts))
	for i, d := range drafts {
		items[i] = models.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ProductID:  d.ProductID,
			Quantity:   d.Quantity,
			UnitPrice:  d.UnitPrice,
			TotalPrice: d.TotalPrice,
			Notes:      d.Notes,
			Options:    d.Options,
		}
	}
	if err := s.db.Create(&items).Error; err != nil {
		if delErr := s.db.Delete(&models.Order{}, "id = ?", order.ID).Error; delErr != nil {
			slog.Error("compensating order delete failed, orphaned order header",
				"order_id", order.ID.String(), "error", delErr.Error())
		} else {
			slog.Warn("order rolled back after item insert failure", "order_id", order.ID.String())
		}
		return apperr.Integrity("create order items", err)
	}

	s.appendHistory(order.ID, models.OrderStatusProcessing, "Pedido recebido")
	return nil
}

// appendHistory writes an audit row. Failure is logged but never propagated:
// history is best-effort, the status change is the primary effect.
func (s *OrderService) appendHistory(orderID uuid.UUID, status, notes string) {
	entry := models.OrderStatusHistory{
		ID:      uuid.New(),
		OrderID: orderID,
		Status:  status,
		Notes:   notes,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to append order status history",
			"order_id", orderID.String(), "status", status, "error", err.Error())
	}
}

// Create places an order on behalf of the store owner (phone orders, walk-ins).
func (s *OrderService) Create(req *dto.CreateOrderRequest, userID uuid.UUID) (*models.Order, error) {
	storeID, err := s.storeIDForUser(userID)
	if err != nil {
		return nil, err
	}

	phone := NormalizePhone(req.Customer.Phone)
	if err := s.checkCustomerCap(storeID, userID, phone); err != nil {
		return nil, err
	}

	customerID, err := s.upsertCustomer(storeID, req.Customer, nil)
	if err != nil {
		return nil, err
	}

	addressID, err := s.createAddress(customerID, req.Address)
	if err != nil {
		return nil, err
	}

	drafts, subtotal, err := s.pricing.ReconcileItems(req.Items, storeID)
	if err != nil {
		return nil, err
	}

	// Owner-created orders proceed without the discount when the coupon
	// does not apply; the rejection is only logged.
	coupon := s.pricing.ApplyCoupon(req.CouponCode, storeID, subtotal)
	if coupon.Err != nil {
		slog.Info(couponRejectionMessage(req.CouponCode, coupon.Err), "store_id", storeID.String())
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
	}

	if err := s.persistOrder(order, drafts); err != nil {
		return nil, err
	}
	return s.reload(order.ID)
}

func (s *OrderService) reload(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").Preload("Address").Preload("Items").Preload("History").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, apperr.Integrity("reload order", err)
	}
	return &order, nil
}

// GetByID fetches one order with its items and history, owner-scoped.
func (s *OrderService) GetByID(orderID, userID uuid.UUID) (*models.Order, error) {
	if _, err := s.loadOwnedOrder(orderID, userID); err != nil {
		return nil, err
	}
	return s.reload(orderID)
}

// List returns the store's orders, filtered and paginated, newest first.
func (s *OrderService) List(q *dto.OrderListQuery, userID uuid.UUID) ([]models.Order, *dto.Pagination, error) {
	storeID, err := s.storeIDForUser(userID)
	if err != nil {
		return nil, nil, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	query := s.db.Model(&models.Order{}).Scopes(database.ForStore(storeID))
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.PaymentMethod != "" {
		query = query.Where("payment_method = ?", q.PaymentMethod)
	}
	if q.PaymentStatus != "" {
		query = query.Where("payment_status = ?", q.PaymentStatus)
	}
	if q.DateFrom != nil {
		query = query.Where("created_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("created_at <= ?", *q.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, apperr.Integrity("count orders", err)
	}

	var orders []models.Order
	err = query.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, nil, apperr.Integrity("list orders", err)
	}

	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return orders, &dto.Pagination{Total: total, Page: q.Page, Limit: q.Limit, Pages: pages}, nil
}

// UpdateStatus applies a status transition after FSM validation and appends
// the audit row.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, status, notes string, userID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOwnedOrder(orderID, userID)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(order.Status, status); err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, apperr.Integrity("update order status", err)
	}
	s.appendHistory(orderID, status, notes)

	order.Status = status
	return order, nil
}

// UpdatePaymentProof attaches a pix payment proof. Uploading the proof is
// the confirmation step in this flow, so payment_status flips to confirmado
// as a documented side effect.
func (s *OrderService) UpdatePaymentProof(orderID uuid.UUID, proofURL string, userID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOwnedOrder(orderID, userID)
	if err != nil {
		return nil, err
	}

	if order.PaymentMethod != models.PaymentMethodPix {
		return nil, apperr.Validation("payment proof can only be attached to pix orders")
	}

	updates := map[string]interface{}{
		"payment_proof_url": proofURL,
		"payment_status":    models.PaymentStatusConfirmed,
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, apperr.Integrity("update payment proof", err)
	}
	order.PaymentProofURL = proofURL
	order.PaymentStatus = models.PaymentStatusConfirmed
	return order, nil
}

// ConfirmPayment marks the order paid regardless of method or current value.
func (s *OrderService) ConfirmPayment(orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOwnedOrder(orderID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("payment_status", models.PaymentStatusConfirmed).Error; err != nil {
		return nil, apperr.Integrity("confirm payment", err)
	}
	order.PaymentStatus = models.PaymentStatusConfirmed
	return order, nil
}
