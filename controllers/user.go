package controllers

import (
	"context"
	"net/http"

	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

// UserController handles customer registration, login and phone OTP
type UserController struct {
	Accounts  *services.AccountService
	ExposeOTP bool
}

// NewUserController creates a new UserController
func NewUserController(accounts *services.AccountService, exposeOTP bool) *UserController {
	return &UserController{Accounts: accounts, ExposeOTP: exposeOTP}
}

// SendOTP issues a verification code for a phone number
func (uc *UserController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	code, err := uc.Accounts.SendOTP(ctx, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := utils.M{"message": "OTP sent successfully"}
	if uc.ExposeOTP {
		resp["otp"] = code
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// VerifyOTP marks a phone number as verified
func (uc *UserController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := uc.Accounts.VerifyOTP(ctx, req.Phone, req.OTP); err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "OTP verified successfully", "verified": true})
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	result, err := uc.Accounts.Register(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, result)
}

// Login handles user login
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	result, err := uc.Accounts.Login(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetProfile returns the authenticated user
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := uc.Accounts.Me(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
