package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ramani-storefront/models"
)

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(OrdersCollection)}
}

func (s *OrderStore) Insert(ctx context.Context, o *models.Order) error {
	res, err := s.coll.InsertOne(ctx, o)
	if err != nil {
		return wrap(err, "insert order")
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *OrderStore) find(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap(err, "find orders")
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, wrap(err, "decode orders")
	}
	return orders, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"userId": userID}, 0)
}

// List returns every order, newest first.
func (s *OrderStore) List(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{}, 0)
}

func (s *OrderStore) Recent(ctx context.Context, n int64) ([]models.Order, error) {
	return s.find(ctx, bson.M{}, n)
}

func (s *OrderStore) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := s.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&o); err != nil {
		return nil, wrap(err, "get order")
	}
	return &o, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o models.Order
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&o); err != nil {
		return nil, wrap(err, "update order status")
	}
	return &o, nil
}

func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	return n, wrap(err, "count orders")
}
