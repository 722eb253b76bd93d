package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents an item in the cart
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart represents a user's shopping cart
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartLine is a cart item with its product details populated
type CartLine struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"quantity"`
	Product   *Product           `json:"product,omitempty"`
}

// CartView is the cart shape returned to clients
type CartView struct {
	ID        primitive.ObjectID `json:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId,omitempty"`
	Items     []CartLine         `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty"`
}

// Wishlist is a set of product references owned by one user
type Wishlist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Contains reports whether productID is already in the wishlist.
func (w *Wishlist) Contains(productID primitive.ObjectID) bool {
	for _, id := range w.Products {
		if id == productID {
			return true
		}
	}
	return false
}

// WishlistView is the wishlist with products populated
type WishlistView struct {
	ID        primitive.ObjectID `json:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId,omitempty"`
	Products  []Product          `json:"products"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty"`
}
