package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ramani-storefront/models"
)

type AddressStore struct {
	coll *mongo.Collection
}

func NewAddressStore(db *mongo.Database) *AddressStore {
	return &AddressStore{coll: db.Collection(AddressesCollection)}
}

func (s *AddressStore) List(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, wrap(err, "list addresses")
	}
	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, wrap(err, "decode addresses")
	}
	return addresses, nil
}

func (s *AddressStore) Get(ctx context.Context, id, userID primitive.ObjectID) (*models.Address, error) {
	var a models.Address
	if err := s.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&a); err != nil {
		return nil, wrap(err, "get address")
	}
	return &a, nil
}

func (s *AddressStore) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"userId": userID})
	return n, wrap(err, "count addresses")
}

func (s *AddressStore) Insert(ctx context.Context, a *models.Address) error {
	res, err := s.coll.InsertOne(ctx, a)
	if err != nil {
		return wrap(err, "insert address")
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *AddressStore) Replace(ctx context.Context, a *models.Address) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": a.ID, "userId": a.UserID}, a)
	if err != nil {
		return wrap(err, "replace address")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AddressStore) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return wrap(err, "delete address")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearDefault unsets isDefault on every address of the user.
func (s *AddressStore) ClearDefault(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "isDefault": true},
		bson.M{"$set": bson.M{"isDefault": false}},
	)
	return wrap(err, "clear default address")
}
