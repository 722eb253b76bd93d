package store

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ramani-storefront/models"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(ProductsCollection)}
}

func (s *ProductStore) Find(ctx context.Context, filter bson.M, page Page) ([]models.Product, error) {
	opts := options.Find()
	if len(page.Sort) > 0 {
		opts.SetSort(page.Sort)
	}
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap(err, "find products")
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, wrap(err, "decode products")
	}
	return products, nil
}

func (s *ProductStore) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Product, error) {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(err, "aggregate products")
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, wrap(err, "decode products")
	}
	return products, nil
}

func (s *ProductStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, filter)
	return n, wrap(err, "count products")
}

func (s *ProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, wrap(err, "get product")
	}
	return &p, nil
}

// GetMany returns the products found for ids, in no particular order.
func (s *ProductStore) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, Page{})
}

// Distinct returns the sorted non-empty values of a string field.
func (s *ProductStore) Distinct(ctx context.Context, field string) ([]string, error) {
	values, err := s.coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, wrap(err, "distinct "+field)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *ProductStore) Insert(ctx context.Context, p *models.Product) error {
	p.DiscountPercent = 0
	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return wrap(err, "insert product")
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ProductStore) InsertMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		products[i].DiscountPercent = 0
		docs[i] = products[i]
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return wrap(err, "insert products")
}

func (s *ProductStore) Replace(ctx context.Context, p *models.Product) error {
	p.DiscountPercent = 0
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return wrap(err, "replace product")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
