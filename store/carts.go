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

type CartStore struct {
	coll *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{coll: db.Collection(CartsCollection)}
}

func (s *CartStore) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return nil, wrap(err, "get cart")
	}
	return &cart, nil
}

// Save replaces the user's cart document, creating it when absent.
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	opts := options.Replace().SetUpsert(true)
	res, err := s.coll.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, opts)
	if err != nil {
		return wrap(err, "save cart")
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return nil
}

// Clear empties the user's cart. A user without a cart is left alone.
func (s *CartStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	return wrap(err, "clear cart")
}

type WishlistStore struct {
	coll *mongo.Collection
}

func NewWishlistStore(db *mongo.Database) *WishlistStore {
	return &WishlistStore{coll: db.Collection(WishlistsCollection)}
}

func (s *WishlistStore) Get(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&w); err != nil {
		return nil, wrap(err, "get wishlist")
	}
	return &w, nil
}

// AddProduct inserts productID into the set, creating the wishlist when needed.
func (s *WishlistStore) AddProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"products": productID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"userId": userID}, update, options.Update().SetUpsert(true))
	return wrap(err, "add to wishlist")
}

func (s *WishlistStore) RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"products": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return wrap(err, "remove from wishlist")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
