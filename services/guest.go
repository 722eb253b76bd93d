package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ramani-storefront/models"
)

// GuestService keeps the cart and wishlist of visitors who have not signed in
// and folds them into an account once they do.
type GuestService struct {
	sessions  GuestSessionStore
	products  ProductStore
	carts     *CartService
	wishlists *WishlistService
	now       func() time.Time
	newID     func() string
}

func NewGuestService(sessions GuestSessionStore, products ProductStore, carts *CartService, wishlists *WishlistService) *GuestService {
	return &GuestService{
		sessions:  sessions,
		products:  products,
		carts:     carts,
		wishlists: wishlists,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create starts an empty session with a fresh id.
func (s *GuestService) Create(ctx context.Context) (*models.GuestSession, error) {
	session := &models.GuestSession{
		ID:        s.newID(),
		Cart:      []models.GuestCartItem{},
		Wishlist:  []string{},
		UpdatedAt: s.now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *GuestService) Get(ctx context.Context, id string) (*models.GuestSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Cart == nil {
		session.Cart = []models.GuestCartItem{}
	}
	if session.Wishlist == nil {
		session.Wishlist = []string{}
	}
	return session, nil
}

// AddToCart increments the line of an existing product or appends a new one.
func (s *GuestService) AddToCart(ctx context.Context, id string, req models.CartItemRequest) (*models.GuestSession, error) {
	productID, err := s.checkProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if req.Quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := productID.Hex()
	for i := range session.Cart {
		if session.Cart[i].ProductID == key {
			session.Cart[i].Quantity += req.Quantity
			return s.save(ctx, session)
		}
	}
	session.Cart = append(session.Cart, models.GuestCartItem{ProductID: key, Quantity: req.Quantity})
	return s.save(ctx, session)
}

func (s *GuestService) SetCartQuantity(ctx context.Context, id, productHex string, quantity int) (*models.GuestSession, error) {
	if quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range session.Cart {
		if session.Cart[i].ProductID == productHex {
			session.Cart[i].Quantity = quantity
			return s.save(ctx, session)
		}
	}
	return nil, ErrItemNotFound
}

func (s *GuestService) RemoveFromCart(ctx context.Context, id, productHex string) (*models.GuestSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items := session.Cart[:0]
	for _, item := range session.Cart {
		if item.ProductID != productHex {
			items = append(items, item)
		}
	}
	session.Cart = items
	return s.save(ctx, session)
}

// AddToWishlist keeps set semantics: a product is listed at most once.
func (s *GuestService) AddToWishlist(ctx context.Context, id, productHex string) (*models.GuestSession, error) {
	productID, err := s.checkProduct(ctx, productHex)
	if err != nil {
		return nil, err
	}
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	key := productID.Hex()
	for _, existing := range session.Wishlist {
		if existing == key {
			return session, nil
		}
	}
	session.Wishlist = append(session.Wishlist, key)
	return s.save(ctx, session)
}

func (s *GuestService) RemoveFromWishlist(ctx context.Context, id, productHex string) (*models.GuestSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := session.Wishlist[:0]
	for _, existing := range session.Wishlist {
		if existing != productHex {
			kept = append(kept, existing)
		}
	}
	session.Wishlist = kept
	return s.save(ctx, session)
}

// Merge moves a guest session into the user's account: wishlist products
// first, then cart lines with their quantities. Items that fail are logged
// and skipped, so a merge can be partial. The session is cleared afterwards.
func (s *GuestService) Merge(ctx context.Context, id string, userID primitive.ObjectID) (*models.MergeResult, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &models.MergeResult{Failed: []string{}}
	for _, productHex := range session.Wishlist {
		productID, err := ParseID("productId", productHex)
		if err == nil {
			_, err = s.wishlists.Add(ctx, userID, productID)
		}
		if err != nil {
			zap.L().Warn("guest wishlist merge failed",
				zap.String("session", id), zap.String("product", productHex), zap.Error(err))
			result.Failed = append(result.Failed, productHex)
			continue
		}
		result.WishlistAdded++
	}

	for _, item := range session.Cart {
		productID, err := ParseID("productId", item.ProductID)
		if err == nil {
			_, err = s.carts.Add(ctx, userID, productID, item.Quantity)
		}
		if err != nil {
			zap.L().Warn("guest cart merge failed",
				zap.String("session", id), zap.String("product", item.ProductID), zap.Error(err))
			result.Failed = append(result.Failed, item.ProductID)
			continue
		}
		result.CartAdded++
	}

	if err := s.sessions.Clear(ctx, id); err != nil {
		return result, err
	}
	return result, nil
}

func (s *GuestService) checkProduct(ctx context.Context, productHex string) (primitive.ObjectID, error) {
	productID, err := ParseID("productId", productHex)
	if err != nil {
		return productID, err
	}
	return productID, ensureProduct(ctx, s.products, productID)
}

func (s *GuestService) save(ctx context.Context, session *models.GuestSession) (*models.GuestSession, error) {
	session.UpdatedAt = s.now()
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
