package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"ramani-storefront/middleware"
	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Orders *services.OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder places an order and empties the user's cart
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(r.Context())

	var req models.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	order, err := oc.Orders.Place(ctx, principal, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// GetOrders lists the user's orders, newest first
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	orders, err := oc.Orders.List(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GetOrder returns one of the user's orders
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	order, err := oc.Orders.Get(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}
