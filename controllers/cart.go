package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

// CartController handles cart-related requests
type CartController struct {
	Carts *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// GetCart returns the user's cart with product details
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cart, err := cc.Carts.View(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	productID, err := services.ParseID("productId", req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cart, err := cc.Carts.Add(ctx, userID, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// UpdateQuantity sets the quantity of a product already in the cart
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.QuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	productID, err := services.ParseID("productId", mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cart, err := cc.Carts.SetQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	productID, err := services.ParseID("productId", mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cart, err := cc.Carts.Remove(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// ClearCart empties the user's cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cart, err := cc.Carts.Clear(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}
