package store

import (
	"context"
	"time"

	"github.com/example/ec-shop-api/internal/models"
)

// ProductUpdate carries the admin-editable product fields. Nil pointers
// leave the stored value untouched.
type ProductUpdate struct {
	Title       *string
	Price       *float64
	Description *string
	Category    *models.Category
	Seller      *string
	Stock       *int
	IsFeatured  *bool
	Images      []models.ProductImage
}

// ProductStore is the products collection.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ProductQuery) ([]*models.Product, int64, error)
	Count(ctx context.Context) (int64, error)

	// DecrementStock atomically subtracts qty from the product's stock,
	// clamped at zero.
	DecrementStock(ctx context.Context, id string, qty int) error

	// SaveReviews overwrites the review list and stored rating aggregate.
	SaveReviews(ctx context.Context, id string, reviews []models.Review, ratings float64) error
}

// UserStore is the users collection.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateCart(ctx context.Context, id string, cart []models.CartItem) error
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// OrderStore is the orders collection.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error
	CountSince(ctx context.Context, t time.Time) (int64, error)
}
