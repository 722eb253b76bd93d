package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/middleware"
	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &services.ValidationError{Field: "quantity", Message: "must be at least 1"}, http.StatusBadRequest, "quantity must be at least 1"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"product", services.ErrProductNotFound, http.StatusNotFound, "Product not found"},
		{"wrapped not found", errors.Wrap(services.ErrCartNotFound, "view"), http.StatusNotFound, "view: Cart not found"},
		{"session", services.ErrSessionNotFound, http.StatusNotFound, "Guest session not found"},
		{"email taken", services.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"otp expired", services.ErrOTPExpired, http.StatusBadRequest, "OTP has expired"},
		{"phone", services.ErrPhoneNotVerified, http.StatusBadRequest, "Phone number not verified"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "connection reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body["error"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var req models.CartItemRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"abc"}`))
	require.NoError(t, decodeJSON(r, &req))
	assert.Equal(t, 1, req.Quantity)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"abc","price":1}`))
	err := decodeJSON(r, &req)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "unknown field")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":2}`))
	assert.ErrorAs(t, decodeJSON(r, &models.CartItemRequest{}), &verr)
}

func TestCurrentUser(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := currentUser(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	id := primitive.NewObjectID()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(middleware.WithPrincipal(r.Context(), utils.Principal{ID: id.Hex(), Role: utils.RoleCustomer}))
	got, ok := currentUser(httptest.NewRecorder(), r)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	rec = httptest.NewRecorder()
	r = r.WithContext(middleware.WithPrincipal(r.Context(), utils.Principal{ID: "legacy", Role: utils.RoleCustomer}))
	_, ok = currentUser(rec, r)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
