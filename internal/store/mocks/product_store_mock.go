package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/store"
)

// MockProductStore is an in-memory ProductStore for testing.
type MockProductStore struct {
	mu       sync.RWMutex
	products map[string]*models.Product

	// For tracking calls in tests
	DecrementCalls []DecrementCall
}

// DecrementCall records parameters passed to DecrementStock.
type DecrementCall struct {
	ProductID string
	Quantity  int
}

func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		products:       make(map[string]*models.Product),
		DecrementCalls: make([]DecrementCall, 0),
	}
}

func (m *MockProductStore) Create(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.products {
		if existing.Title == product.Title {
			return store.ErrDuplicate
		}
	}
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	clone := *product
	m.products[product.ID.Hex()] = &clone
	return nil
}

func (m *MockProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MockProductStore) Update(ctx context.Context, id string, update store.ProductUpdate) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.Seller != nil {
		p.Seller = *update.Seller
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.IsFeatured != nil {
		p.IsFeatured = *update.IsFeatured
	}
	if update.Images != nil {
		p.Images = update.Images
	}
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockProductStore) List(ctx context.Context, q store.ProductQuery) ([]*models.Product, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*models.Product
	for _, p := range m.products {
		if q.Keyword != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Keyword)) {
			continue
		}
		if q.Category != "" && string(p.Category) != q.Category {
			continue
		}
		if q.PriceGTE != nil && p.Price < *q.PriceGTE {
			continue
		}
		if q.PriceLTE != nil && p.Price > *q.PriceLTE {
			continue
		}
		if q.Featured && !p.IsFeatured {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}

	switch q.Sort {
	case store.SortPriceAsc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case store.SortPriceDesc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case store.SortRatingsDesc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Ratings > matched[j].Ratings })
	case store.SortNewest:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	default:
		// deterministic order for paging tests
		sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	}

	total := int64(len(matched))
	if q.All {
		return matched, total, nil
	}

	perPage := q.PerPage()
	start := perPage * (q.PageNumber() - 1)
	if start >= total {
		return []*models.Product{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MockProductStore) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

func (m *MockProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DecrementCalls = append(m.DecrementCalls, DecrementCall{ProductID: id, Quantity: qty})

	p, ok := m.products[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	return nil
}

func (m *MockProductStore) SaveReviews(ctx context.Context, id string, reviews []models.Review, ratings float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Reviews = reviews
	p.Ratings = ratings
	return nil
}
