package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ramani-storefront/models"
)

// AnalyticsStore runs the read-only dashboard aggregations
type AnalyticsStore struct {
	products *mongo.Collection
	users    *mongo.Collection
	orders   *mongo.Collection
}

func NewAnalyticsStore(db *mongo.Database) *AnalyticsStore {
	return &AnalyticsStore{
		products: db.Collection(ProductsCollection),
		users:    db.Collection(UsersCollection),
		orders:   db.Collection(OrdersCollection),
	}
}

func (s *AnalyticsStore) CountProducts(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.products.CountDocuments(ctx, filter)
	return n, wrap(err, "count products")
}

func (s *AnalyticsStore) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{})
	return n, wrap(err, "count users")
}

func (s *AnalyticsStore) CountOrders(ctx context.Context) (int64, error) {
	n, err := s.orders.CountDocuments(ctx, bson.M{})
	return n, wrap(err, "count orders")
}

func (s *AnalyticsStore) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
	}
	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, wrap(err, "aggregate revenue")
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, wrap(err, "decode revenue")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (s *AnalyticsStore) RecentOrders(ctx context.Context, n int64) ([]models.Order, error) {
	return (&OrderStore{coll: s.orders}).Recent(ctx, n)
}

// MonthlyBuckets groups orders created since the given time by calendar month.
func (s *AnalyticsStore) MonthlyBuckets(ctx context.Context, since time.Time) ([]models.MonthBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"year": bson.M{"$year": "$createdAt"}, "month": bson.M{"$month": "$createdAt"}},
			"revenue": bson.M{"$sum": "$totalAmount"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":     0,
			"year":    "$_id.year",
			"month":   "$_id.month",
			"revenue": 1,
			"orders":  1,
		}}},
	}
	buckets := []models.MonthBucket{}
	return buckets, s.aggregateOrders(ctx, pipeline, &buckets, "monthly sales")
}

// WeeklyBuckets groups orders created since the given time by ISO week.
func (s *AnalyticsStore) WeeklyBuckets(ctx context.Context, since time.Time) ([]models.WeekBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"year": bson.M{"$isoWeekYear": "$createdAt"}, "week": bson.M{"$isoWeek": "$createdAt"}},
			"revenue": bson.M{"$sum": "$totalAmount"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":     0,
			"year":    "$_id.year",
			"week":    "$_id.week",
			"revenue": 1,
		}}},
	}
	buckets := []models.WeekBucket{}
	return buckets, s.aggregateOrders(ctx, pipeline, &buckets, "weekly sales")
}

// CategoryCounts counts products per category, largest first.
func (s *AnalyticsStore) CategoryCounts(ctx context.Context) ([]models.CategorySlice, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "value": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "value", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "name": "$_id", "value": 1}}},
	}
	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(err, "aggregate categories")
	}
	var rows []struct {
		Name  string `bson:"name"`
		Value int64  `bson:"value"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrap(err, "decode categories")
	}
	out := make([]models.CategorySlice, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CategorySlice{Name: r.Name, Value: r.Value})
	}
	return out, nil
}

func (s *AnalyticsStore) aggregateOrders(ctx context.Context, pipeline mongo.Pipeline, out interface{}, what string) error {
	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return wrap(err, "aggregate "+what)
	}
	return wrap(cursor.All(ctx, out), "decode "+what)
}
