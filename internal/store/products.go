package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/ec-shop-api/internal/models"
)

// MongoProductStore implements ProductStore on a mongo collection.
type MongoProductStore struct {
	collection *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{collection: db.Collection(productCollection)}
}

func (s *MongoProductStore) Create(ctx context.Context, product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	if product.Images == nil {
		product.Images = []models.ProductImage{}
	}
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}

	result, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("product %q: %w", product.Title, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (s *MongoProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (s *MongoProductStore) Update(ctx context.Context, id string, update ProductUpdate) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Seller != nil {
		set["seller"] = *update.Seller
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.IsFeatured != nil {
		set["is_featured"] = *update.IsFeatured
	}
	if update.Images != nil {
		set["images"] = update.Images
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("product title: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) List(ctx context.Context, q ProductQuery) ([]*models.Product, int64, error) {
	filter := q.Filter()

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	findOptions := options.Find()
	if sort := q.SortDoc(); sort != nil {
		findOptions.SetSort(sort)
	}
	if !q.All {
		perPage := q.PerPage()
		findOptions.SetLimit(perPage)
		findOptions.SetSkip(perPage * (q.PageNumber() - 1))
	}

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	if products == nil {
		products = []*models.Product{}
	}

	return products, total, nil
}

func (s *MongoProductStore) Count(ctx context.Context) (int64, error) {
	total, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// DecrementStock subtracts qty from the stock counter in a single
// pipeline update, clamped at zero. The update is atomic per document,
// so concurrent orders cannot drive stock negative.
func (s *MongoProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"stock": bson.M{
				"$max": bson.A{0, bson.M{"$subtract": bson.A{"$stock", qty}}},
			},
			"updated_at": time.Now(),
		}}},
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) SaveReviews(ctx context.Context, id string, reviews []models.Review, ratings float64) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"reviews":    reviews,
			"ratings":    ratings,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save reviews: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
