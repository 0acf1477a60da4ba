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

// MongoOrderStore implements OrderStore on a mongo collection.
type MongoOrderStore struct {
	collection *mongo.Collection
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{collection: db.Collection(orderCollection)}
}

func (s *MongoOrderStore) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	if order.Status == "" {
		order.Status = models.StatusOrdered
	}

	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (s *MongoOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var order models.Order
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (s *MongoOrderStore) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.list(ctx, bson.M{"user": objID})
}

func (s *MongoOrderStore) ListAll(ctx context.Context) ([]*models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoOrderStore) list(ctx context.Context, filter bson.M) ([]*models.Order, error) {
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, nil
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{
		"order_status": status,
		"updated_at":   time.Now(),
	}
	if deliveredAt != nil {
		set["delivered_at"] = *deliveredAt
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoOrderStore) CountSince(ctx context.Context, t time.Time) (int64, error) {
	total, err := s.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": t}})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}
