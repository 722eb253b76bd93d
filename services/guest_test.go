package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
)

type guestFixture struct {
	svc       *GuestService
	sessions  *fakeSessions
	carts     *fakeCarts
	wishlists *fakeWishlists
	p1, p2    models.Product
}

func newGuestFixture() *guestFixture {
	f := &guestFixture{
		sessions:  newFakeSessions(),
		carts:     newFakeCarts(),
		wishlists: newFakeWishlists(),
		p1:        models.Product{ID: primitive.NewObjectID(), Name: "Banarasi", Price: 7999},
		p2:        models.Product{ID: primitive.NewObjectID(), Name: "Linen", Price: 1999},
	}
	products := newFakeProducts(f.p1, f.p2)
	f.svc = NewGuestService(f.sessions, products,
		NewCartService(f.carts, products), NewWishlistService(f.wishlists, products))
	f.svc.newID = func() string { return "guest-1" }
	return f
}

func TestGuestSessionCart(t *testing.T) {
	f := newGuestFixture()
	ctx := context.Background()

	session, err := f.svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "guest-1", session.ID)
	assert.Empty(t, session.Cart)

	_, err = f.svc.AddToCart(ctx, session.ID, models.CartItemRequest{ProductID: f.p1.ID.Hex(), Quantity: 1})
	require.NoError(t, err)
	session, err = f.svc.AddToCart(ctx, session.ID, models.CartItemRequest{ProductID: f.p1.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	require.Len(t, session.Cart, 1)
	assert.Equal(t, 3, session.Cart[0].Quantity)

	session, err = f.svc.SetCartQuantity(ctx, session.ID, f.p1.ID.Hex(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Cart[0].Quantity)

	_, err = f.svc.SetCartQuantity(ctx, session.ID, f.p2.ID.Hex(), 1)
	assert.ErrorIs(t, err, ErrItemNotFound)

	session, err = f.svc.RemoveFromCart(ctx, session.ID, f.p1.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, session.Cart)
}

func TestGuestRejectsUnknownSessionAndProduct(t *testing.T) {
	f := newGuestFixture()
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, session.ID, models.CartItemRequest{ProductID: primitive.NewObjectID().Hex(), Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.svc.AddToWishlist(ctx, session.ID, "bogus")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGuestWishlistIsASet(t *testing.T) {
	f := newGuestFixture()
	ctx := context.Background()
	session, err := f.svc.Create(ctx)
	require.NoError(t, err)

	_, err = f.svc.AddToWishlist(ctx, session.ID, f.p1.ID.Hex())
	require.NoError(t, err)
	session, err = f.svc.AddToWishlist(ctx, session.ID, f.p1.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{f.p1.ID.Hex()}, session.Wishlist)

	session, err = f.svc.RemoveFromWishlist(ctx, session.ID, f.p1.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, session.Wishlist)
}

func TestGuestMerge(t *testing.T) {
	f := newGuestFixture()
	ctx := context.Background()
	user := primitive.NewObjectID()

	session, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, session.ID, models.CartItemRequest{ProductID: f.p1.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.AddToWishlist(ctx, session.ID, f.p2.ID.Hex())
	require.NoError(t, err)

	// The account already holds one unit of p1.
	_, err = f.svc.carts.Add(ctx, user, f.p1.ID, 1)
	require.NoError(t, err)

	result, err := f.svc.Merge(ctx, session.ID, user)
	require.NoError(t, err)
	assert.Equal(t, &models.MergeResult{WishlistAdded: 1, CartAdded: 1, Failed: []string{}}, result)

	cart := f.carts.byUser[user]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	wishlist := f.wishlists.byUser[user]
	assert.True(t, wishlist.Contains(f.p2.ID))

	_, err = f.svc.Merge(ctx, session.ID, user)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGuestMergeSkipsFailedItems(t *testing.T) {
	f := newGuestFixture()
	ctx := context.Background()
	user := primitive.NewObjectID()
	gone := primitive.NewObjectID().Hex()

	require.NoError(t, f.sessions.Set(ctx, &models.GuestSession{
		ID: "stale",
		Cart: []models.GuestCartItem{
			{ProductID: gone, Quantity: 1},
			{ProductID: f.p2.ID.Hex(), Quantity: 4},
		},
		Wishlist: []string{gone},
	}))

	result, err := f.svc.Merge(ctx, "stale", user)
	require.NoError(t, err)
	assert.Equal(t, 0, result.WishlistAdded)
	assert.Equal(t, 1, result.CartAdded)
	assert.Equal(t, []string{gone, gone}, result.Failed)
	assert.Equal(t, 4, f.carts.byUser[user].Items[0].Quantity)
}
