package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
)

func TestWishlistIsASet(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Name: "Organza"}
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts(p))
	ctx := context.Background()
	user := primitive.NewObjectID()

	_, err := svc.Add(ctx, user, p.ID)
	require.NoError(t, err)
	view, err := svc.Add(ctx, user, p.ID)
	require.NoError(t, err)

	require.Len(t, view.Products, 1)
	assert.Equal(t, "Organza", view.Products[0].Name)

	view, err = svc.Remove(ctx, user, p.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Products)
}

func TestWishlistRemoveWithoutWishlist(t *testing.T) {
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts())
	_, err := svc.Remove(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts())
	_, err := svc.Add(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProductNotFound)
}
