package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"ramani-storefront/models"
)

const (
	salesMonths    = 6
	activityWeeks  = 4
	recentOrderCap = 5
)

// AnalyticsService computes the admin dashboard on every request
type AnalyticsService struct {
	source            AnalyticsStore
	lowStockThreshold int
	now               func() time.Time
}

func NewAnalyticsService(source AnalyticsStore, lowStockThreshold int) *AnalyticsService {
	return &AnalyticsService{source: source, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// LowStockFilter matches products with some stock left, at or under threshold.
func LowStockFilter(threshold int) bson.M {
	return bson.M{"stockQuantity": bson.M{"$gt": 0, "$lte": threshold}}
}

// OutOfStockFilter matches products with nothing left.
func OutOfStockFilter() bson.M {
	return bson.M{"stockQuantity": bson.M{"$lte": 0}}
}

// MonthWindowStart is the first instant of the oldest month in the trailing window.
func MonthWindowStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-(salesMonths-1), 1, 0, 0, 0, 0, time.UTC)
}

// WeekWindowStart is the Monday starting the oldest ISO week in the trailing window.
func WeekWindowStart(now time.Time) time.Time {
	now = now.UTC()
	offset := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, time.UTC)
	return monday.AddDate(0, 0, -7*(activityWeeks-1))
}

// FillMonths lays the buckets over the window, oldest first, with zeros for
// months that had no orders.
func FillMonths(now time.Time, buckets []models.MonthBucket) []models.MonthlySales {
	byKey := make(map[[2]int]models.MonthBucket, len(buckets))
	for _, b := range buckets {
		byKey[[2]int{b.Year, b.Month}] = b
	}
	start := MonthWindowStart(now)
	out := make([]models.MonthlySales, 0, salesMonths)
	for i := 0; i < salesMonths; i++ {
		m := start.AddDate(0, i, 0)
		b := byKey[[2]int{m.Year(), int(m.Month())}]
		out = append(out, models.MonthlySales{
			Month:   m.Format("Jan"),
			Revenue: b.Revenue,
			Orders:  b.Orders,
		})
	}
	return out
}

// FillWeeks lays the buckets over the trailing ISO weeks, oldest first.
func FillWeeks(now time.Time, buckets []models.WeekBucket) []models.WeeklySales {
	byKey := make(map[[2]int]float64, len(buckets))
	for _, b := range buckets {
		byKey[[2]int{b.Year, b.Week}] = b.Revenue
	}
	start := WeekWindowStart(now)
	out := make([]models.WeeklySales, 0, activityWeeks)
	for i := 0; i < activityWeeks; i++ {
		year, week := start.AddDate(0, 0, 7*i).ISOWeek()
		out = append(out, models.WeeklySales{
			Week:  fmt.Sprintf("Week %d", week),
			Sales: byKey[[2]int{year, week}],
		})
	}
	return out
}

// Dashboard gathers every figure the admin overview shows.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	now := s.now()
	d := &models.Dashboard{}
	var err error

	if d.TotalProducts, err = s.source.CountProducts(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if d.TotalUsers, err = s.source.CountUsers(ctx); err != nil {
		return nil, err
	}
	if d.TotalOrders, err = s.source.CountOrders(ctx); err != nil {
		return nil, err
	}
	if d.TotalRevenue, err = s.source.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	if d.LowStockProducts, err = s.source.CountProducts(ctx, LowStockFilter(s.lowStockThreshold)); err != nil {
		return nil, err
	}
	if d.OutOfStockProducts, err = s.source.CountProducts(ctx, OutOfStockFilter()); err != nil {
		return nil, err
	}
	if d.RecentOrders, err = s.source.RecentOrders(ctx, recentOrderCap); err != nil {
		return nil, err
	}

	months, err := s.source.MonthlyBuckets(ctx, MonthWindowStart(now))
	if err != nil {
		return nil, err
	}
	d.SalesData = FillMonths(now, months)

	if d.CategoryData, err = s.source.CategoryCounts(ctx); err != nil {
		return nil, err
	}

	weeks, err := s.source.WeeklyBuckets(ctx, WeekWindowStart(now))
	if err != nil {
		return nil, err
	}
	d.RecentActivity = FillWeeks(now, weeks)

	if d.RecentOrders == nil {
		d.RecentOrders = []models.Order{}
	}
	if d.CategoryData == nil {
		d.CategoryData = []models.CategorySlice{}
	}
	return d, nil
}
