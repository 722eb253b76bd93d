package services

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

// WishlistService manages each customer's set of saved products
type WishlistService struct {
	wishlists WishlistStore
	products  ProductStore
}

func NewWishlistService(wishlists WishlistStore, products ProductStore) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

func (s *WishlistService) View(ctx context.Context, userID primitive.ObjectID) (*models.WishlistView, error) {
	w, err := s.wishlists.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.WishlistView{Products: []models.Product{}}, nil
	}
	if err != nil {
		return nil, err
	}

	byID, err := productsByID(ctx, s.products, w.Products)
	if err != nil {
		return nil, err
	}
	view := &models.WishlistView{
		ID:        w.ID,
		UserID:    w.UserID,
		Products:  make([]models.Product, 0, len(w.Products)),
		UpdatedAt: w.UpdatedAt,
	}
	for _, id := range w.Products {
		if p, ok := byID[id]; ok {
			view.Products = append(view.Products, p)
		}
	}
	return view, nil
}

// Add inserts a product into the wishlist. Adding it twice keeps one entry.
func (s *WishlistService) Add(ctx context.Context, userID, productID primitive.ObjectID) (*models.WishlistView, error) {
	if err := ensureProduct(ctx, s.products, productID); err != nil {
		return nil, err
	}
	if err := s.wishlists.AddProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.WishlistView, error) {
	err := s.wishlists.RemoveProduct(ctx, userID, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrWishlistNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}
