package service

import (
	"context"
	"time"

	"github.com/example/ec-shop-api/internal/store"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalProducts int64 `json:"totalProducts"`
	SalesToday    int64 `json:"salesToday"`
}

// StatsService computes the admin dashboard counters.
type StatsService struct {
	users    store.UserStore
	products store.ProductStore
	orders   store.OrderStore
	// now is swappable for tests
	now func() time.Time
}

func NewStatsService(users store.UserStore, products store.ProductStore, orders store.OrderStore) *StatsService {
	return &StatsService{
		users:    users,
		products: products,
		orders:   orders,
		now:      time.Now,
	}
}

// Dashboard returns user and product totals plus the number of orders
// created since local midnight.
func (s *StatsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return DashboardStats{}, err
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.SalesToday, err = s.orders.CountSince(ctx, startOfDay); err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}
