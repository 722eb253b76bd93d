package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

// GuestController serves the cart and wishlist of visitors who are not signed in
type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

// CreateSession starts an anonymous session and returns its id
func (gc *GuestController) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.Create(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, session)
}

func (gc *GuestController) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.Get(ctx, mux.Vars(r)["sid"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func (gc *GuestController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.AddToCart(ctx, mux.Vars(r)["sid"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func (gc *GuestController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req models.QuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.SetCartQuantity(ctx, vars["sid"], vars["productId"], req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func (gc *GuestController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.RemoveFromCart(ctx, vars["sid"], vars["productId"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func (gc *GuestController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.AddToWishlist(ctx, vars["sid"], vars["productId"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func (gc *GuestController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := gc.Guests.RemoveFromWishlist(ctx, vars["sid"], vars["productId"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

// Merge folds the session into the signed-in customer's cart and wishlist
func (gc *GuestController) Merge(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	result, err := gc.Guests.Merge(ctx, mux.Vars(r)["sid"], userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}
