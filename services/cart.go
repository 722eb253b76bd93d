package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

// CartService manages the one cart each customer owns
type CartService struct {
	carts    CartStore
	products ProductStore
	now      func() time.Time
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products, now: time.Now}
}

// View returns the populated cart, or an empty one when the user has none.
func (s *CartService) View(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {
	cart, err := s.carts.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.CartView{Items: []models.CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

// Add puts quantity units of a product in the cart. A product already in the
// cart has its quantity increased instead of getting a second line.
func (s *CartService) Add(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	if err := ensureProduct(ctx, s.products, productID); err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	return s.save(ctx, cart)
}

// SetQuantity replaces the quantity of a line already in the cart.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	cart, err := s.getCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return s.save(ctx, cart)
		}
	}
	return nil, ErrItemNotFound
}

// Remove drops a product's line. Removing an absent product is not an error.
func (s *CartService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.CartView, error) {
	cart, err := s.getCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	return s.save(ctx, cart)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

func (s *CartService) getCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	return cart, err
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	cart.UpdatedAt = s.now()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.populate(ctx, cart)
}

func (s *CartService) populate(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	byID, err := productsByID(ctx, s.products, ids)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     make([]models.CartLine, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		line := models.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := byID[item.ProductID]; ok {
			p := p
			line.Product = &p
		}
		view.Items = append(view.Items, line)
	}
	return view, nil
}

func ensureProduct(ctx context.Context, products ProductStore, id primitive.ObjectID) error {
	_, err := products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func productsByID(ctx context.Context, products ProductStore, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	found, err := products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(found))
	for _, p := range withDiscount(found) {
		byID[p.ID] = p
	}
	return byID, nil
}
