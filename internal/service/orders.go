package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ec-shop-api/internal/events"
	"github.com/example/ec-shop-api/internal/kafka"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/store"
)

var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidPayment   = errors.New("invalid payment method")
	ErrAlreadyDelivered = errors.New("order has already been delivered")
)

// CreateOrderInput is a checkout submission. Price fields are computed
// client-side and persisted as given; the catalog is not re-consulted.
type CreateOrderInput struct {
	ShippingInfo  models.ShippingInfo  `json:"shippingInfo" binding:"required"`
	Items         []models.OrderItem   `json:"orderItems" binding:"required,min=1,dive"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	PaymentInfo   models.PaymentInfo   `json:"paymentInfo"`
	ItemsPrice    float64              `json:"itemsPrice"`
	TaxPrice      float64              `json:"taxPrice"`
	TotalAmount   float64              `json:"totalAmount"`
}

// StockCheckItem is one entry of a bulk availability query.
type StockCheckItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// StockShortage reports an item that cannot be fulfilled.
type StockShortage struct {
	ProductID string `json:"productId"`
	Available int    `json:"available"`
}

// OrderService owns the order creation and status flow, the one place
// with a multi-entity invariant: placing an order adjusts the stock
// counters of the ordered products.
type OrderService struct {
	orders   store.OrderStore
	products store.ProductStore
	producer *kafka.Producer
}

func NewOrderService(orders store.OrderStore, products store.ProductStore, producer *kafka.Producer) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		producer: producer,
	}
}

// Create persists the order, then decrements stock once per item,
// atomically clamped at zero. Items whose product no longer exists are
// skipped; the order itself is never rolled back.
func (s *OrderService) Create(ctx context.Context, userID string, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !input.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	order := &models.Order{
		ShippingInfo:  input.ShippingInfo,
		UserID:        uid,
		Items:         input.Items,
		PaymentMethod: input.PaymentMethod,
		PaymentInfo:   input.PaymentInfo,
		ItemsPrice:    input.ItemsPrice,
		TaxPrice:      input.TaxPrice,
		TotalAmount:   input.TotalAmount,
		Status:        models.StatusOrdered,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		err := s.products.DecrementStock(ctx, item.ProductID.Hex(), item.Quantity)
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("adjust stock for product %s: %w", item.ProductID.Hex(), err)
		}
	}

	s.publish(ctx, order.ID.Hex(), events.TypeOrderCreated, events.OrderCreated{
		OrderID:     order.ID.Hex(),
		UserID:      userID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
	})

	return order, nil
}

// UpdateStatus applies an admin status transition. Delivered is
// terminal: any further change is rejected with no state change. Stock
// is never adjusted here; it was already decremented at creation.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == models.StatusDelivered {
		return ErrAlreadyDelivered
	}

	var deliveredAt *time.Time
	if status == models.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status, deliveredAt); err != nil {
		return err
	}

	s.publish(ctx, orderID, events.TypeOrderStatusChanged, events.OrderStatusChanged{
		OrderID: orderID,
		UserID:  order.UserID.Hex(),
		Status:  string(status),
	})

	return nil
}

// CheckStock verifies a set of requested quantities against current
// stock and reports the ones that cannot be fulfilled.
func (s *OrderService) CheckStock(ctx context.Context, items []StockCheckItem) ([]StockShortage, error) {
	shortages := make([]StockShortage, 0)
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			shortages = append(shortages, StockShortage{ProductID: item.ProductID, Available: 0})
			continue
		}
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			shortages = append(shortages, StockShortage{ProductID: item.ProductID, Available: product.Stock})
		}
	}
	return shortages, nil
}

// AddressEntry is a deduplicated shipping address from order history,
// keyed by the first order that used it.
type AddressEntry struct {
	models.ShippingInfo
	OrderID string `json:"id"`
}

// Addresses lists the distinct shipping addresses a user has ordered to.
func (s *OrderService) Addresses(ctx context.Context, userID string) ([]AddressEntry, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.ShippingInfo]bool)
	addresses := make([]AddressEntry, 0)
	for _, order := range orders {
		if seen[order.ShippingInfo] {
			continue
		}
		seen[order.ShippingInfo] = true
		addresses = append(addresses, AddressEntry{
			ShippingInfo: order.ShippingInfo,
			OrderID:      order.ID.Hex(),
		})
	}
	return addresses, nil
}

func (s *OrderService) publish(ctx context.Context, key, eventType string, payload any) {
	if s.producer == nil {
		return
	}
	envelope, err := events.Wrap(eventType, payload)
	if err != nil {
		log.Printf("[Orders] Failed to build %s event: %v", eventType, err)
		return
	}
	// Best effort: a publish failure must not fail the request.
	if err := s.producer.Publish(ctx, key, envelope); err != nil {
		log.Printf("[Orders] Failed to publish %s event: %v", eventType, err)
	}
}
