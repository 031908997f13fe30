package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/config"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/stripe/stripe-go/v78"
	checkoutsession "github.com/stripe/stripe-go/v78/checkout/session"
	"gorm.io/gorm"
)

var ErrUnknownPlan = errors.New("unknown plan")

// SubscriptionEventType enumerates the gateway events this service reacts to.
type SubscriptionEventType string

const (
	EventCheckoutCompleted   SubscriptionEventType = "checkout_completed"
	EventInvoicePaid         SubscriptionEventType = "invoice_paid"
	EventSubscriptionUpdated SubscriptionEventType = "subscription_updated"
	EventSubscriptionDeleted SubscriptionEventType = "subscription_deleted"
)

// SubscriptionEvent is the gateway-agnostic shape the webhook handler
// extracts from Stripe payloads before anything touches the database.
type SubscriptionEvent struct {
	Type              SubscriptionEventType
	UserID            string // from checkout metadata
	Plan              string // plan id, e.g. plan-vitrine
	StripeCustomerID  string
	SubscriptionID    string
	SessionID         string
	InvoiceID         string
	AmountPaid        float64
	PaymentMethod     string
	SubscriptionState string
	CancelAtPeriodEnd bool
	PeriodEnd         time.Time
}

// SubscriptionService owns the webhook-driven write path for plan fields.
// It must stay consistent with the lazy-downgrade read path in PlanService:
// both write plan_active/plan_expire_at on users.
type SubscriptionService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewSubscriptionService(db *gorm.DB, cfg *config.Config) *SubscriptionService {
	return &SubscriptionService{db: db, cfg: cfg}
}

// Subscribe creates a Stripe checkout session for the given plan key
// (vitrine, prateleira, mercado) and returns the hosted checkout URL.
func (s *SubscriptionService) Subscribe(user *models.User, plano string) (string, error) {
	priceID := s.cfg.PriceIDFor(plano)
	if priceID == "" {
		return "", ErrUnknownPlan
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:         stripe.String(s.cfg.CheckoutSuccessURL),
		CancelURL:          stripe.String(s.cfg.CheckoutCancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(user.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
	}
	params.AddMetadata("user_id", user.ID.String())
	params.AddMetadata("plano", plano)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

// HandleEvent dispatches one gateway event. Unknown event types are ignored.
func (s *SubscriptionService) HandleEvent(event *SubscriptionEvent) error {
	switch event.Type {
	case EventCheckoutCompleted:
		return s.handleCheckoutCompleted(event)
	case EventInvoicePaid:
		return s.handleInvoicePaid(event)
	case EventSubscriptionUpdated:
		return s.handleSubscriptionUpdated(event)
	case EventSubscriptionDeleted:
		return s.handleSubscriptionDeleted(event)
	default:
		return nil
	}
}

func (s *SubscriptionService) appendHistory(entry models.PlanHistory) {
	entry.ID = uuid.New()
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to record plan history", "user_id", entry.UserID.String(), "error", err.Error())
	}
}

func (s *SubscriptionService) handleCheckoutCompleted(event *SubscriptionEvent) error {
	if event.UserID == "" || event.Plan == "" {
		slog.Warn("checkout webhook missing metadata", "session_id", event.SessionID)
		return nil
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id in checkout metadata: %w", err)
	}

	expireAt := time.Now().AddDate(0, 1, 0)
	updates := map[string]interface{}{
		"plan_active":            event.Plan,
		"plan_expire_at":         expireAt,
		"stripe_customer_id":     event.StripeCustomerID,
		"stripe_subscription_id": event.SubscriptionID,
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to activate plan: %w", err)
	}
	slog.Info("plan activated", "user_id", event.UserID, "plan", event.Plan)

	s.appendHistory(models.PlanHistory{
		UserID:               userID,
		PlanName:             event.Plan,
		StartDate:            time.Now(),
		EndDate:              &expireAt,
		PaymentStatus:        "paid",
		AmountPaid:           event.AmountPaid,
		PaymentMethod:        event.PaymentMethod,
		StripeSessionID:      event.SessionID,
		StripeSubscriptionID: event.SubscriptionID,
	})
	return nil
}

func (s *SubscriptionService) handleInvoicePaid(event *SubscriptionEvent) error {
	if event.SubscriptionID == "" {
		return nil // not a subscription invoice
	}

	var user models.User
	if err := s.db.First(&user, "stripe_customer_id = ?", event.StripeCustomerID).Error; err != nil {
		return fmt.Errorf("user not found for stripe customer %s: %w", event.StripeCustomerID, err)
	}

	planName := event.Plan
	if planName == "" && user.PlanActive != nil {
		planName = *user.PlanActive
	}

	expireAt := time.Now().AddDate(0, 1, 0)
	updates := map[string]interface{}{
		"plan_active":            planName,
		"plan_expire_at":         expireAt,
		"stripe_subscription_id": event.SubscriptionID,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to renew plan: %w", err)
	}
	slog.Info("plan renewed", "user_id", user.ID.String(), "plan", planName)

	s.appendHistory(models.PlanHistory{
		UserID:               user.ID,
		PlanName:             planName,
		StartDate:            time.Now(),
		EndDate:              &expireAt,
		PaymentStatus:        "paid",
		AmountPaid:           event.AmountPaid,
		PaymentMethod:        event.PaymentMethod,
		StripeInvoiceID:      event.InvoiceID,
		StripeSubscriptionID: event.SubscriptionID,
	})
	return nil
}

func (s *SubscriptionService) handleSubscriptionUpdated(event *SubscriptionEvent) error {
	var user models.User
	if err := s.db.First(&user, "stripe_subscription_id = ?", event.SubscriptionID).Error; err != nil {
		slog.Warn("user not found for subscription update", "subscription_id", event.SubscriptionID)
		return nil
	}

	// Cancelled but still inside the paid period: keep the plan until it
	// runs out, the lazy downgrade will pick it up afterwards.
	if event.CancelAtPeriodEnd {
		updates := map[string]interface{}{
			"subscription_status": "canceled_pending",
			"plan_expire_at":      event.PeriodEnd,
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to mark pending cancellation: %w", err)
		}
		slog.Info("subscription marked for cancellation", "user_id", user.ID.String())
		return nil
	}

	if event.SubscriptionState == "active" && event.Plan != "" {
		updates := map[string]interface{}{
			"plan_active":         event.Plan,
			"subscription_status": event.SubscriptionState,
			"plan_expire_at":      event.PeriodEnd,
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		slog.Info("subscription updated", "user_id", user.ID.String(), "plan", event.Plan)
	}
	return nil
}

func (s *SubscriptionService) handleSubscriptionDeleted(event *SubscriptionEvent) error {
	var user models.User
	if err := s.db.First(&user, "stripe_subscription_id = ?", event.SubscriptionID).Error; err != nil {
		slog.Warn("user not found for subscription deletion", "subscription_id", event.SubscriptionID)
		return nil
	}

	updates := map[string]interface{}{
		"plan_active":         "plan-free",
		"subscription_status": "canceled",
		"plan_expire_at":      nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to revert plan: %w", err)
	}
	slog.Info("subscription deleted, reverted to free plan", "user_id", user.ID.String())

	s.appendHistory(models.PlanHistory{
		UserID:               user.ID,
		PlanName:             "plan-free",
		StartDate:            time.Now(),
		PaymentStatus:        "canceled",
		StripeSubscriptionID: event.SubscriptionID,
	})
	return nil
}
