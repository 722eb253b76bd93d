package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ramani-storefront/models"
)

type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection(ContactsCollection)}
}

func (s *ContactStore) Insert(ctx context.Context, c *models.ContactSubmission) error {
	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return wrap(err, "insert contact submission")
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ContactStore) List(ctx context.Context) ([]models.ContactSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrap(err, "list contact submissions")
	}
	out := []models.ContactSubmission{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, wrap(err, "decode contact submissions")
	}
	return out, nil
}
