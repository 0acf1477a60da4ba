package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/ec-shop-api/internal/email"
	"github.com/example/ec-shop-api/internal/events"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/store"
)

// Mailer is the slice of the email service the notifier needs.
type Mailer interface {
	SendOrderConfirmation(to, name, orderID string, total float64) error
	SendOrderStatusUpdate(to, name, orderID, status string) error
}

// Handler turns consumed order events into customer emails. Failures
// are logged and swallowed; notification is best effort.
type Handler struct {
	mailer Mailer
	users  store.UserStore
}

func NewHandler(mailer Mailer, users store.UserStore) *Handler {
	return &Handler{mailer: mailer, users: users}
}

var _ Mailer = (*email.Service)(nil)

// HandleEvent processes one event from the order topic.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var envelope events.Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch envelope.Type {
	case events.TypeOrderCreated:
		return h.handleOrderCreated(ctx, envelope)
	case events.TypeOrderStatusChanged:
		return h.handleStatusChanged(ctx, envelope)
	}
	return nil
}

func (h *Handler) handleOrderCreated(ctx context.Context, envelope events.Envelope) error {
	var e events.OrderCreated
	if err := json.Unmarshal(envelope.Data, &e); err != nil {
		log.Printf("[Notifier] Bad %s payload: %v", envelope.Type, err)
		return err
	}

	user, err := h.lookupUser(ctx, e.UserID)
	if err != nil {
		return nil
	}

	if err := h.mailer.SendOrderConfirmation(user.Email, user.Name, e.OrderID, e.TotalAmount); err != nil {
		log.Printf("[Notifier] Failed to send confirmation for order %s: %v", e.OrderID, err)
	} else {
		log.Printf("[Notifier] Sent order confirmation for %s to %s", e.OrderID, user.Email)
	}
	return nil
}

func (h *Handler) handleStatusChanged(ctx context.Context, envelope events.Envelope) error {
	var e events.OrderStatusChanged
	if err := json.Unmarshal(envelope.Data, &e); err != nil {
		log.Printf("[Notifier] Bad %s payload: %v", envelope.Type, err)
		return err
	}

	// Customers only care about movement, not cancellations they made.
	if e.Status != string(models.StatusShipped) && e.Status != string(models.StatusDelivered) {
		return nil
	}

	user, err := h.lookupUser(ctx, e.UserID)
	if err != nil {
		return nil
	}

	if err := h.mailer.SendOrderStatusUpdate(user.Email, user.Name, e.OrderID, e.Status); err != nil {
		log.Printf("[Notifier] Failed to send status update for order %s: %v", e.OrderID, err)
	} else {
		log.Printf("[Notifier] Sent %s notice for order %s to %s", e.Status, e.OrderID, user.Email)
	}
	return nil
}

func (h *Handler) lookupUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[Notifier] User %s not found: %v", userID, err)
		return nil, err
	}
	return user, nil
}
