package services

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
)

// Errors surfaced to API clients. Their text is the response message.
var (
	ErrProductNotFound    = errors.New("Product not found")
	ErrCartNotFound       = errors.New("Cart not found")
	ErrItemNotFound       = errors.New("Item not found in cart")
	ErrWishlistNotFound   = errors.New("Wishlist not found")
	ErrOrderNotFound      = errors.New("Order not found")
	ErrAddressNotFound    = errors.New("Address not found")
	ErrUserNotFound       = errors.New("User not found")
	ErrSessionNotFound    = errors.New("Guest session not found")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrOTPInvalid         = errors.New("Invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired")
	ErrPhoneNotVerified   = errors.New("Phone number not verified")
)

// ValidationError is returned for rejected input.
type ValidationError = models.ValidationError

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ParseID converts a hex path or body value into an ObjectID.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, invalid(field, "is not a valid id")
	}
	return id, nil
}
