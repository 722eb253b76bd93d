package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"ramani-storefront/services"
	"ramani-storefront/utils"
)

type WishlistController struct {
	Wishlists *services.WishlistService
}

func NewWishlistController(wishlists *services.WishlistService) *WishlistController {
	return &WishlistController{Wishlists: wishlists}
}

func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	wishlist, err := wc.Wishlists.View(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wishlist)
}

// AddToWishlist is idempotent: a product already listed stays listed once.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
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
	wishlist, err := wc.Wishlists.Add(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wishlist)
}

func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
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
	wishlist, err := wc.Wishlists.Remove(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wishlist)
}
