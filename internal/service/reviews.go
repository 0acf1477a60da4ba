package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/store"
)

// ReviewService maintains the per-product review list and its rating
// aggregate. One review per user per product: a second submission from
// the same user replaces the first.
type ReviewService struct {
	products store.ProductStore
}

func NewReviewService(products store.ProductStore) *ReviewService {
	return &ReviewService{products: products}
}

// AddOrUpdate upserts the user's review and recomputes the stored
// rating as the arithmetic mean over all current reviews. The recompute
// is full, not incremental; concurrent writers race last-write-wins.
func (s *ReviewService) AddOrUpdate(ctx context.Context, productID string, userID primitive.ObjectID, userName string, rating float64, comment string) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	reviews := product.Reviews
	replaced := false
	for i := range reviews {
		if reviews[i].UserID == userID {
			reviews[i].Rating = rating
			reviews[i].Comment = comment
			replaced = true
			break
		}
	}
	if !replaced {
		reviews = append(reviews, models.Review{
			UserID:  userID,
			Name:    userName,
			Rating:  rating,
			Comment: comment,
		})
	}

	product.Reviews = reviews
	return s.products.SaveReviews(ctx, productID, reviews, product.AverageRating())
}

// List returns the reviews of a product.
func (s *ReviewService) List(ctx context.Context, productID string) ([]models.Review, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Reviews == nil {
		return []models.Review{}, nil
	}
	return product.Reviews, nil
}
