package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog entry
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Category      string             `bson:"category" json:"category"`
	Fabric        string             `bson:"fabric" json:"fabric"`
	Color         string             `bson:"color" json:"color"`
	Occasion      string             `bson:"occasion" json:"occasion"`
	Images        []string           `bson:"images" json:"images"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity"`
	InStock       bool               `bson:"inStock" json:"inStock"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewCount   int                `bson:"reviewCount" json:"reviewCount"`
	IsNewArrival  bool               `bson:"isNewArrival" json:"isNewArrival"`
	IsBestseller  bool               `bson:"isBestseller" json:"isBestseller"`
	IsTrending    bool               `bson:"isTrending" json:"isTrending"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Derived on read, never stored.
	DiscountPercent float64 `bson:"discountPercent,omitempty" json:"discountPercent"`
}

// DiscountPercent returns the rounded percentage off the original price.
func DiscountPercent(p Product) float64 {
	if p.OriginalPrice <= 0 || p.OriginalPrice <= p.Price {
		return 0
	}
	return math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100)
}

// Pagination describes one page of a listing
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit).
func NewPagination(page, limit, total int64) Pagination {
	p := Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.Pages = (total + limit - 1) / limit
	}
	return p
}

// ProductPage is the catalog listing response
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// FilterOptions lists the distinct facet values of the catalog
type FilterOptions struct {
	Categories []string `json:"categories"`
	Fabrics    []string `json:"fabrics"`
	Colors     []string `json:"colors"`
	Occasions  []string `json:"occasions"`
}
