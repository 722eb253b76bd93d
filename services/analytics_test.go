package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"ramani-storefront/models"
)

type fakeAnalytics struct {
	productCounts map[string]int64
	monthsSince   time.Time
	weeksSince    time.Time
	months        []models.MonthBucket
	weeks         []models.WeekBucket
}

func (f *fakeAnalytics) CountProducts(_ context.Context, filter bson.M) (int64, error) {
	switch {
	case len(filter) == 0:
		return f.productCounts["all"], nil
	case filter["stockQuantity"].(bson.M)["$gt"] != nil:
		return f.productCounts["low"], nil
	default:
		return f.productCounts["out"], nil
	}
}

func (f *fakeAnalytics) CountUsers(context.Context) (int64, error)     { return 7, nil }
func (f *fakeAnalytics) CountOrders(context.Context) (int64, error)    { return 3, nil }
func (f *fakeAnalytics) TotalRevenue(context.Context) (float64, error) { return 15000, nil }

func (f *fakeAnalytics) RecentOrders(context.Context, int64) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeAnalytics) MonthlyBuckets(_ context.Context, since time.Time) ([]models.MonthBucket, error) {
	f.monthsSince = since
	return f.months, nil
}

func (f *fakeAnalytics) WeeklyBuckets(_ context.Context, since time.Time) ([]models.WeekBucket, error) {
	f.weeksSince = since
	return f.weeks, nil
}

func (f *fakeAnalytics) CategoryCounts(context.Context) ([]models.CategorySlice, error) {
	return nil, nil
}

var analyticsNow = time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

func TestWindowStarts(t *testing.T) {
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), MonthWindowStart(analyticsNow))
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), WeekWindowStart(analyticsNow))
}

func TestFillMonths(t *testing.T) {
	sales := FillMonths(analyticsNow, []models.MonthBucket{
		{Year: 2025, Month: 12, Revenue: 4000, Orders: 2},
		{Year: 2026, Month: 3, Revenue: 1000, Orders: 1},
	})
	assert.Equal(t, []models.MonthlySales{
		{Month: "Oct"}, {Month: "Nov"},
		{Month: "Dec", Revenue: 4000, Orders: 2},
		{Month: "Jan"}, {Month: "Feb"},
		{Month: "Mar", Revenue: 1000, Orders: 1},
	}, sales)
}

func TestFillWeeks(t *testing.T) {
	weeks := FillWeeks(analyticsNow, []models.WeekBucket{{Year: 2026, Week: 11, Revenue: 2500}})
	assert.Equal(t, []models.WeeklySales{
		{Week: "Week 9"}, {Week: "Week 10"}, {Week: "Week 11", Sales: 2500}, {Week: "Week 12"},
	}, weeks)
}

func TestStockFilters(t *testing.T) {
	assert.Equal(t, bson.M{"stockQuantity": bson.M{"$gt": 0, "$lte": 10}}, LowStockFilter(10))
	assert.Equal(t, bson.M{"stockQuantity": bson.M{"$lte": 0}}, OutOfStockFilter())
}

func TestDashboard(t *testing.T) {
	source := &fakeAnalytics{productCounts: map[string]int64{"all": 40, "low": 4, "out": 2}}
	svc := NewAnalyticsService(source, 10)
	svc.now = fixedClock(analyticsNow)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(40), d.TotalProducts)
	assert.Equal(t, int64(4), d.LowStockProducts)
	assert.Equal(t, int64(2), d.OutOfStockProducts)
	assert.Equal(t, int64(7), d.TotalUsers)
	assert.Equal(t, int64(3), d.TotalOrders)
	assert.Equal(t, 15000.0, d.TotalRevenue)
	assert.Len(t, d.SalesData, 6)
	assert.Len(t, d.RecentActivity, 4)
	assert.NotNil(t, d.RecentOrders)
	assert.NotNil(t, d.CategoryData)
	assert.Equal(t, MonthWindowStart(analyticsNow), source.monthsSince)
	assert.Equal(t, WeekWindowStart(analyticsNow), source.weeksSince)
}
