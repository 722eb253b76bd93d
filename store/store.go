// Package store implements MongoDB persistence for every collection of the storefront.
package store

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names
const (
	ProductsCollection  = "products"
	UsersCollection     = "users"
	CartsCollection     = "carts"
	WishlistsCollection = "wishlists"
	OrdersCollection    = "orders"
	AddressesCollection = "addresses"
	AdminsCollection    = "admins"
	OTPsCollection      = "otps"
	ContactsCollection  = "contacts"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Page bounds a find query.
type Page struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return errors.WithMessage(ErrDuplicate, msg)
	}
	return errors.Wrap(err, msg)
}
