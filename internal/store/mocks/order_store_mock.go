package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/store"
)

// MockOrderStore is an in-memory OrderStore for testing.
type MockOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*models.Order

	// For tracking calls in tests
	StatusCalls []StatusCall
}

// StatusCall records parameters passed to UpdateStatus.
type StatusCall struct {
	OrderID string
	Status  models.OrderStatus
}

func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		orders:      make(map[string]*models.Order),
		StatusCalls: make([]StatusCall, 0),
	}
}

func (m *MockOrderStore) Create(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.Status == "" {
		order.Status = models.StatusOrdered
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	clone := *order
	m.orders[order.ID.Hex()] = &clone
	return nil
}

func (m *MockOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (m *MockOrderStore) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]*models.Order, 0)
	for _, o := range m.orders {
		if o.UserID.Hex() == userID {
			clone := *o
			orders = append(orders, &clone)
		}
	}
	sortByNewest(orders)
	return orders, nil
}

func (m *MockOrderStore) ListAll(ctx context.Context) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]*models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		clone := *o
		orders = append(orders, &clone)
	}
	sortByNewest(orders)
	return orders, nil
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StatusCalls = append(m.StatusCalls, StatusCall{OrderID: id, Status: status})

	o, ok := m.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.Status = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (m *MockOrderStore) CountSince(ctx context.Context, t time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, o := range m.orders {
		if !o.CreatedAt.Before(t) {
			count++
		}
	}
	return count, nil
}

func sortByNewest(orders []*models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
