package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pedeai/pedeai-backend/internal/config"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/services"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

// WebhookHandler verifies Stripe signatures and translates raw payloads into
// gateway-agnostic events before the service layer sees them.
type WebhookHandler struct {
	subscriptions *services.SubscriptionService
	cfg           *config.Config
}

func NewWebhookHandler(subscriptions *services.SubscriptionService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{subscriptions: subscriptions, cfg: cfg}
}

func (h *WebhookHandler) HandleStripe(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), h.cfg.StripeWebhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook signature",
		})
	}

	sub, err := h.translate(&event)
	if err != nil {
		slog.Error("webhook payload parse failed", "event_type", event.Type, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}
	if sub == nil {
		// event type we don't act on, acknowledge so Stripe stops retrying
		return c.JSON(fiber.Map{"received": true})
	}

	if err := h.subscriptions.HandleEvent(sub); err != nil {
		slog.Error("webhook processing failed", "event_type", event.Type, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("webhook processed", "event_type", event.Type)
	return c.JSON(fiber.Map{"received": true})
}

func (h *WebhookHandler) translate(event *stripe.Event) (*services.SubscriptionEvent, error) {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, err
		}
		out := &services.SubscriptionEvent{
			Type:          services.EventCheckoutCompleted,
			UserID:        sess.Metadata["user_id"],
			SessionID:     sess.ID,
			AmountPaid:    float64(sess.AmountTotal) / 100,
			PaymentMethod: "card",
		}
		if plano := sess.Metadata["plano"]; plano != "" {
			out.Plan = "plan-" + plano
		}
		if sess.Customer != nil {
			out.StripeCustomerID = sess.Customer.ID
		}
		if sess.Subscription != nil {
			out.SubscriptionID = sess.Subscription.ID
		}
		return out, nil

	// Stripe emits invoice.payment_succeeded for subscription renewals;
	// invoice.paid covers endpoints registered for the newer event set.
	case "invoice.paid", "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, err
		}
		out := &services.SubscriptionEvent{
			Type:          services.EventInvoicePaid,
			InvoiceID:     inv.ID,
			AmountPaid:    float64(inv.AmountPaid) / 100,
			PaymentMethod: "card",
		}
		if inv.Customer != nil {
			out.StripeCustomerID = inv.Customer.ID
		}
		if inv.Subscription != nil {
			out.SubscriptionID = inv.Subscription.ID
		}
		return out, nil

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		out := &services.SubscriptionEvent{
			Type:              services.EventSubscriptionUpdated,
			SubscriptionID:    sub.ID,
			SubscriptionState: string(sub.Status),
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
			PeriodEnd:         time.Unix(sub.CurrentPeriodEnd, 0),
		}
		if sub.Customer != nil {
			out.StripeCustomerID = sub.Customer.ID
		}
		if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
			out.Plan = h.cfg.PlanForPriceID(sub.Items.Data[0].Price.ID)
		}
		return out, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		return &services.SubscriptionEvent{
			Type:           services.EventSubscriptionDeleted,
			SubscriptionID: sub.ID,
		}, nil
	}

	return nil, nil
}
