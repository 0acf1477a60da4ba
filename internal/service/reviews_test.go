package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ec-shop-api/internal/store"
	"github.com/example/ec-shop-api/internal/store/mocks"
)

func TestReviewService_AddOrUpdate_FirstReview(t *testing.T) {
	products := mocks.NewMockProductStore()
	svc := NewReviewService(products)

	p := seedProduct(t, products, "Coffee Grinder", 5)
	userID := primitive.NewObjectID()

	err := svc.AddOrUpdate(context.Background(), p.ID.Hex(), userID, "Alice", 4, "Solid build")

	require.NoError(t, err)
	stored, err := products.GetByID(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, "Alice", stored.Reviews[0].Name)
	assert.Equal(t, 4.0, stored.Reviews[0].Rating)
	assert.Equal(t, 4.0, stored.Ratings)
}

func TestReviewService_AddOrUpdate_ComputesMean(t *testing.T) {
	products := mocks.NewMockProductStore()
	svc := NewReviewService(products)

	p := seedProduct(t, products, "Kettle", 5)

	require.NoError(t, svc.AddOrUpdate(context.Background(), p.ID.Hex(), primitive.NewObjectID(), "Alice", 5, "Great"))
	require.NoError(t, svc.AddOrUpdate(context.Background(), p.ID.Hex(), primitive.NewObjectID(), "Bob", 2, "Leaks"))

	stored, err := products.GetByID(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, stored.Reviews, 2)
	assert.Equal(t, 3.5, stored.Ratings)
}

func TestReviewService_AddOrUpdate_ReplacesExisting(t *testing.T) {
	products := mocks.NewMockProductStore()
	svc := NewReviewService(products)

	p := seedProduct(t, products, "Toaster", 5)
	userID := primitive.NewObjectID()

	require.NoError(t, svc.AddOrUpdate(context.Background(), p.ID.Hex(), userID, "Alice", 2, "Meh"))
	require.NoError(t, svc.AddOrUpdate(context.Background(), p.ID.Hex(), userID, "Alice", 5, "Grew on me"))

	stored, err := products.GetByID(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, 5.0, stored.Reviews[0].Rating)
	assert.Equal(t, "Grew on me", stored.Reviews[0].Comment)
	assert.Equal(t, 5.0, stored.Ratings)
}

func TestReviewService_AddOrUpdate_UnknownProduct(t *testing.T) {
	svc := NewReviewService(mocks.NewMockProductStore())

	err := svc.AddOrUpdate(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID(), "Alice", 4, "n/a")

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReviewService_List_Empty(t *testing.T) {
	products := mocks.NewMockProductStore()
	svc := NewReviewService(products)

	p := seedProduct(t, products, "Blender", 5)

	reviews, err := svc.List(context.Background(), p.ID.Hex())

	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}
