package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

type AddressController struct {
	Addresses *services.AddressService
}

func NewAddressController(addresses *services.AddressService) *AddressController {
	return &AddressController{Addresses: addresses}
}

func (ac *AddressController) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	addresses, err := ac.Addresses.List(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, addresses)
}

func (ac *AddressController) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	address, err := ac.Addresses.Create(ctx, userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, address)
}

func (ac *AddressController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	address, err := ac.Addresses.Update(ctx, userID, mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, address)
}

func (ac *AddressController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := ac.Addresses.Delete(ctx, userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Address deleted successfully"})
}
