package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ramani-storefront/models"
)

type AdminStore struct {
	coll *mongo.Collection
}

func NewAdminStore(db *mongo.Database) *AdminStore {
	return &AdminStore{coll: db.Collection(AdminsCollection)}
}

func (s *AdminStore) Insert(ctx context.Context, a *models.AdminUser) error {
	res, err := s.coll.InsertOne(ctx, a)
	if err != nil {
		return wrap(err, "insert admin")
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var a models.AdminUser
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, wrap(err, "get admin")
	}
	return &a, nil
}

func (s *AdminStore) SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	update := bson.M{"$set": bson.M{"otp": code, "otpExpiresAt": expiresAt}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	return wrap(err, "set admin otp")
}

func (s *AdminStore) ClearOTP(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$unset": bson.M{"otp": "", "otpExpiresAt": ""}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	return wrap(err, "clear admin otp")
}
