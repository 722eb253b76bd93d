package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	defaultSort  = "createdAt"
	discountSort = "discount"
)

var sortFields = map[string]bool{
	"createdAt":     true,
	"price":         true,
	"name":          true,
	"rating":        true,
	"reviewCount":   true,
	"stockQuantity": true,
	discountSort:    true,
}

// ProductQuery is the parsed form of the catalog query string.
type ProductQuery struct {
	Categories   []string
	Fabrics      []string
	Colors       []string
	Occasions    []string
	MinPrice     *float64
	MaxPrice     *float64
	InStock      bool
	IsNewArrival bool
	IsBestseller bool
	IsTrending   bool
	Search       string
	Sort         string
	Desc         bool
	Page         int64
	Limit        int64
}

func (q ProductQuery) skip() int64 {
	return (q.Page - 1) * q.Limit
}

// ParseProductQuery reads filters, sort and paging from the query string.
// Missing or unusable paging values fall back to page 1 of 12; unknown sort
// fields fall back to createdAt. Page size has no upper bound.
func ParseProductQuery(v url.Values) (ProductQuery, error) {
	q := ProductQuery{
		Categories: splitValues(v.Get("category")),
		Fabrics:    splitValues(v.Get("fabric")),
		Colors:     splitValues(v.Get("color")),
		Occasions:  splitValues(v.Get("occasion")),
		Search:     strings.TrimSpace(v.Get("search")),
		Sort:       v.Get("sort"),
		Desc:       v.Get("order") != "asc",
		Page:       defaultPage,
		Limit:      defaultLimit,
	}
	q.InStock = v.Get("inStock") == "true"
	q.IsNewArrival = v.Get("isNew") == "true" || v.Get("isNewArrival") == "true"
	q.IsBestseller = v.Get("isBestseller") == "true"
	q.IsTrending = v.Get("isTrending") == "true"

	if !sortFields[q.Sort] {
		q.Sort = defaultSort
	}
	// Paging is always decimal, so "010" is 10 and "0x10" falls back.
	if page, err := strconv.ParseInt(v.Get("page"), 10, 64); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.ParseInt(v.Get("limit"), 10, 64); err == nil && limit > 0 {
		q.Limit = limit
	}

	for _, bound := range []struct {
		key string
		dst **float64
	}{{"minPrice", &q.MinPrice}, {"maxPrice", &q.MaxPrice}} {
		raw := v.Get(bound.key)
		if raw == "" {
			continue
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return q, invalid(bound.key, "must be a number")
		}
		*bound.dst = &f
	}
	return q, nil
}

func splitValues(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func matchValues(values []string) interface{} {
	if len(values) == 1 {
		return values[0]
	}
	return bson.M{"$in": values}
}

// BuildFilter translates q into a MongoDB filter document.
func BuildFilter(q ProductQuery) bson.M {
	filter := bson.M{}
	for field, values := range map[string][]string{
		"category": q.Categories,
		"fabric":   q.Fabrics,
		"color":    q.Colors,
		"occasion": q.Occasions,
	} {
		if len(values) > 0 {
			filter[field] = matchValues(values)
		}
	}

	if q.InStock {
		filter["inStock"] = true
	}
	if q.IsNewArrival {
		filter["isNewArrival"] = true
	}
	if q.IsBestseller {
		filter["isBestseller"] = true
	}
	if q.IsTrending {
		filter["isTrending"] = true
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	return filter
}

func sortDirection(q ProductQuery) int {
	if q.Desc {
		return -1
	}
	return 1
}

// DiscountPipeline matches, derives discountPercent, sorts on it and pages.
func DiscountPipeline(filter bson.M, q ProductQuery) mongo.Pipeline {
	discount := bson.M{"$cond": bson.A{
		bson.M{"$and": bson.A{
			bson.M{"$gt": bson.A{"$originalPrice", 0}},
			bson.M{"$gt": bson.A{"$originalPrice", "$price"}},
		}},
		bson.M{"$multiply": bson.A{
			bson.M{"$divide": bson.A{
				bson.M{"$subtract": bson.A{"$originalPrice", "$price"}},
				"$originalPrice",
			}},
			100,
		}},
		0,
	}}

	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$addFields", Value: bson.M{"discountPercent": discount}}},
		{{Key: "$sort", Value: bson.D{{Key: "discountPercent", Value: sortDirection(q)}, {Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: q.skip()}},
		{{Key: "$limit", Value: q.Limit}},
	}
}

// CatalogService serves the public product listing
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// List returns one page of products matching q.
func (s *CatalogService) List(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	filter := BuildFilter(q)

	var (
		products []models.Product
		err      error
	)
	if q.Sort == discountSort {
		products, err = s.products.Aggregate(ctx, DiscountPipeline(filter, q))
	} else {
		page := store.Page{
			Sort:  bson.D{{Key: q.Sort, Value: sortDirection(q)}, {Key: "_id", Value: 1}},
			Skip:  q.skip(),
			Limit: q.Limit,
		}
		products, err = s.products.Find(ctx, filter, page)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.ProductPage{
		Products:   withDiscount(products),
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Get returns a single product by its hex id.
func (s *CatalogService) Get(ctx context.Context, idHex string) (*models.Product, error) {
	id, err := ParseID("id", idHex)
	if err != nil {
		return nil, err
	}
	p, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	p.DiscountPercent = models.DiscountPercent(*p)
	return p, nil
}

// Filters lists the distinct facet values present in the catalog.
func (s *CatalogService) Filters(ctx context.Context) (*models.FilterOptions, error) {
	var opts models.FilterOptions
	for field, dst := range map[string]*[]string{
		"category": &opts.Categories,
		"fabric":   &opts.Fabrics,
		"color":    &opts.Colors,
		"occasion": &opts.Occasions,
	} {
		values, err := s.products.Distinct(ctx, field)
		if err != nil {
			return nil, err
		}
		*dst = values
	}
	return &opts, nil
}

func withDiscount(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	for i := range products {
		products[i].DiscountPercent = models.DiscountPercent(products[i])
	}
	return products
}
