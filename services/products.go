package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

// ProductAdminService is the back-office side of the catalog
type ProductAdminService struct {
	products ProductStore
	now      func() time.Time
}

func NewProductAdminService(products ProductStore) *ProductAdminService {
	return &ProductAdminService{products: products, now: time.Now}
}

func (s *ProductAdminService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	now := s.now()
	p := &models.Product{Images: []string{}, CreatedAt: now, UpdatedAt: now}
	in.Apply(p)
	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	p.DiscountPercent = models.DiscountPercent(*p)
	return p, nil
}

// Update applies a partial change to a product.
func (s *ProductAdminService) Update(ctx context.Context, idHex string, in models.ProductInput) (*models.Product, error) {
	p, err := s.get(ctx, idHex)
	if err != nil {
		return nil, err
	}
	in.Apply(p)
	return s.replace(ctx, p)
}

func (s *ProductAdminService) Delete(ctx context.Context, idHex string) error {
	id, err := ParseID("id", idHex)
	if err != nil {
		return err
	}
	err = s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// Inventory lists every product, lowest stock first.
func (s *ProductAdminService) Inventory(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.Find(ctx, bson.M{}, store.Page{
		Sort: bson.D{{Key: "stockQuantity", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	return withDiscount(products), nil
}

// UpdateStock sets the stock level. inStock follows the quantity unless given.
func (s *ProductAdminService) UpdateStock(ctx context.Context, idHex string, req models.InventoryUpdate) (*models.Product, error) {
	p, err := s.get(ctx, idHex)
	if err != nil {
		return nil, err
	}
	p.StockQuantity = *req.StockQuantity
	if req.InStock != nil {
		p.InStock = *req.InStock
	} else {
		p.InStock = p.StockQuantity > 0
	}
	return s.replace(ctx, p)
}

func (s *ProductAdminService) get(ctx context.Context, idHex string) (*models.Product, error) {
	id, err := ParseID("id", idHex)
	if err != nil {
		return nil, err
	}
	p, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (s *ProductAdminService) replace(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.UpdatedAt = s.now()
	if err := s.products.Replace(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p.DiscountPercent = models.DiscountPercent(*p)
	return p, nil
}
