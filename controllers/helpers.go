package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ramani-storefront/middleware"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

const requestTimeout = 5 * time.Second

type validator interface {
	Validate() error
}

// decodeJSON reads the body into dst, rejecting unknown fields, and runs its
// validation when it has one.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &services.ValidationError{Message: "Invalid request body: " + err.Error()}
	}
	if v, ok := dst.(validator); ok {
		return v.Validate()
	}
	return nil
}

// writeError maps a service error onto its HTTP status.
func writeError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrWishlistNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrOTPInvalid),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrPhoneNotVerified):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// currentUser returns the authenticated customer's id. It writes the error
// response itself when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Access token required")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Invalid or expired token")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Health reports that the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
}
