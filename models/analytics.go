package models

// MonthlySales is one calendar month of revenue
type MonthlySales struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// CategorySlice counts products in a category
type CategorySlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// WeeklySales is revenue grouped by ISO week
type WeeklySales struct {
	Week  string  `json:"week"`
	Sales float64 `json:"sales"`
}

// Dashboard is the admin analytics payload
type Dashboard struct {
	TotalProducts      int64           `json:"totalProducts"`
	TotalUsers         int64           `json:"totalUsers"`
	TotalOrders        int64           `json:"totalOrders"`
	TotalRevenue       float64         `json:"totalRevenue"`
	LowStockProducts   int64           `json:"lowStockProducts"`
	OutOfStockProducts int64           `json:"outOfStockProducts"`
	RecentOrders       []Order         `json:"recentOrders"`
	SalesData          []MonthlySales  `json:"salesData"`
	CategoryData       []CategorySlice `json:"categoryData"`
	RecentActivity     []WeeklySales   `json:"recentActivity"`
}

// MonthBucket is raw order revenue grouped by calendar month
type MonthBucket struct {
	Year    int     `bson:"year"`
	Month   int     `bson:"month"`
	Revenue float64 `bson:"revenue"`
	Orders  int64   `bson:"orders"`
}

// WeekBucket is raw order revenue grouped by ISO week
type WeekBucket struct {
	Year    int     `bson:"year"`
	Week    int     `bson:"week"`
	Revenue float64 `bson:"revenue"`
}
