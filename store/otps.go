package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ramani-storefront/models"
)

type OTPStore struct {
	coll *mongo.Collection
}

func NewOTPStore(db *mongo.Database) *OTPStore {
	return &OTPStore{coll: db.Collection(OTPsCollection)}
}

// Upsert replaces any pending code for the phone with a fresh unverified one.
func (s *OTPStore) Upsert(ctx context.Context, otp models.OTP) error {
	update := bson.M{"$set": bson.M{
		"otp":       otp.Code,
		"verified":  false,
		"expiresAt": otp.ExpiresAt,
		"createdAt": otp.CreatedAt,
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"phone": otp.Phone}, update, options.Update().SetUpsert(true))
	return wrap(err, "upsert otp")
}

func (s *OTPStore) Get(ctx context.Context, phone string) (*models.OTP, error) {
	var otp models.OTP
	if err := s.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&otp); err != nil {
		return nil, wrap(err, "get otp")
	}
	return &otp, nil
}

func (s *OTPStore) MarkVerified(ctx context.Context, phone string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$set": bson.M{"verified": true}})
	return wrap(err, "verify otp")
}

func (s *OTPStore) Delete(ctx context.Context, phone string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"phone": phone})
	return wrap(err, "delete otp")
}
