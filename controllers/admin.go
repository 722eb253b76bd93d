package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"ramani-storefront/metrics"
	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

// AdminController serves the back office: admin login, analytics and
// the store-wide listings.
type AdminController struct {
	Auth      *services.AdminAuthService
	Accounts  *services.AccountService
	Orders    *services.OrderService
	Analytics *services.AnalyticsService
	Contacts  *services.ContactService
	Metrics   *metrics.Registry
}

// Signup creates an admin account
func (ac *AdminController) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.AdminSignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	admin, err := ac.Auth.Signup(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Admin created successfully", "admin": admin})
}

// StartLogin checks the password and sends an OTP to the admin's mobile
func (ac *AdminController) StartLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminStartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	challenge, err := ac.Auth.Start(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, challenge)
}

// VerifyLogin exchanges a valid OTP for an admin token
func (ac *AdminController) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminVerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	session, err := ac.Auth.Verify(ctx, req)
	if errors.Is(err, services.ErrOTPInvalid) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

// GetAnalytics computes the dashboard figures
func (ac *AdminController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	dashboard, err := ac.Analytics.Dashboard(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dashboard)
}

func (ac *AdminController) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	users, err := ac.Accounts.Customers(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

func (ac *AdminController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	orders, err := ac.Orders.ListAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus moves an order to another status
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req models.OrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	order, err := ac.Orders.UpdateStatus(ctx, mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// ExportOrders downloads every order as CSV
func (ac *AdminController) ExportOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := ac.Orders.ExportCSV(ctx, w); err != nil {
		writeError(w, err)
	}
}

func (ac *AdminController) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	contacts, err := ac.Contacts.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, contacts)
}

// GetMetrics reports request latency percentiles per route
func (ac *AdminController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"routes": ac.Metrics.Snapshot()})
}
