package models

import "time"

// GuestCartItem is an anonymous cart line keyed by product id hex
type GuestCartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GuestSession holds the cart and wishlist of a visitor who has not signed in
type GuestSession struct {
	ID        string          `json:"id"`
	Cart      []GuestCartItem `json:"cart"`
	Wishlist  []string        `json:"wishlist"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MergeResult summarizes a guest-to-account merge
type MergeResult struct {
	WishlistAdded int      `json:"wishlistAdded"`
	CartAdded     int      `json:"cartAdded"`
	Failed        []string `json:"failed"`
}
