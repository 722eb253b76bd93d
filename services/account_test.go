package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
	"ramani-storefront/utils"
)

func testIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer(
		utils.TokenDomain{Secret: []byte("customer-secret")},
		utils.TokenDomain{Secret: []byte("admin-secret"), TTL: 24 * time.Hour},
	)
}

type accountFixture struct {
	svc    *AccountService
	users  *fakeUsers
	otps   *fakeOTPs
	sender *recordingSender
	now    time.Time
}

func newAccountFixture(requirePhone bool, guests *GuestService) *accountFixture {
	f := &accountFixture{
		users:  newFakeUsers(),
		otps:   newFakeOTPs(),
		sender: &recordingSender{},
		now:    time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewAccountService(f.users, f.otps, testIssuer(), FixedOtpGenerator{Code: "123456"}, f.sender, guests,
		AccountOptions{OTPTTL: 10 * time.Minute, RequirePhoneOTP: requirePhone})
	f.svc.now = fixedClock(f.now)
	return f
}

func TestSendAndVerifyOTP(t *testing.T) {
	f := newAccountFixture(true, nil)
	ctx := context.Background()

	code, err := f.svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
	assert.Equal(t, "9876543210", f.sender.phone)
	assert.Equal(t, f.now.Add(10*time.Minute), f.otps.byPhone["9876543210"].ExpiresAt)

	assert.ErrorIs(t, f.svc.VerifyOTP(ctx, "9876543210", "000000"), ErrOTPInvalid)
	assert.ErrorIs(t, f.svc.VerifyOTP(ctx, "9999999999", "123456"), ErrOTPInvalid)

	require.NoError(t, f.svc.VerifyOTP(ctx, "9876543210", "123456"))
	assert.True(t, f.otps.byPhone["9876543210"].Verified)
}

func TestVerifyExpiredOTP(t *testing.T) {
	f := newAccountFixture(true, nil)
	ctx := context.Background()

	_, err := f.svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	f.svc.now = fixedClock(f.now.Add(11 * time.Minute))
	assert.ErrorIs(t, f.svc.VerifyOTP(ctx, "9876543210", "123456"), ErrOTPExpired)
	assert.NotContains(t, f.otps.byPhone, "9876543210")
}

func TestRegisterRequiresVerifiedPhone(t *testing.T) {
	f := newAccountFixture(true, nil)
	ctx := context.Background()
	req := models.RegisterRequest{Name: "Asha", Email: "Asha@Example.com", Password: "secret1", Phone: "9876543210"}

	_, err := f.svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrPhoneNotVerified)

	_, err = f.svc.SendOTP(ctx, req.Phone)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyOTP(ctx, req.Phone, "123456"))

	result, err := f.svc.Register(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "asha@example.com", result.User.Email)
	assert.Nil(t, result.Merge)

	stored := f.users.byEmail["asha@example.com"]
	assert.True(t, stored.PhoneVerified)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NotContains(t, f.otps.byPhone, req.Phone)

	principal, err := testIssuer().Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), principal.ID)
	assert.Equal(t, utils.RoleCustomer, principal.Role)

	_, err = f.svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterWithoutPhoneCheck(t *testing.T) {
	f := newAccountFixture(false, nil)
	result, err := f.svc.Register(context.Background(),
		models.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1", Phone: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", result.User.Name)
	assert.False(t, f.users.byEmail["ravi@example.com"].PhoneVerified)
}

func TestLogin(t *testing.T) {
	f := newAccountFixture(false, nil)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, models.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := f.svc.Login(ctx, models.LoginRequest{Email: "RAVI@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = f.svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginMergesGuestSession(t *testing.T) {
	g := newGuestFixture()
	f := newAccountFixture(false, g.svc)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, models.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	session, err := g.svc.Create(ctx)
	require.NoError(t, err)
	_, err = g.svc.AddToCart(ctx, session.ID, models.CartItemRequest{ProductID: g.p1.ID.Hex(), Quantity: 2})
	require.NoError(t, err)

	result, err := f.svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "secret1", GuestSessionID: session.ID})
	require.NoError(t, err)
	require.NotNil(t, result.Merge)
	assert.Equal(t, 1, result.Merge.CartAdded)

	userID, err := primitive.ObjectIDFromHex(result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, g.carts.byUser[userID].Items[0].Quantity)

	// A stale session id does not block login.
	result, err = f.svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "secret1", GuestSessionID: session.ID})
	require.NoError(t, err)
	assert.Nil(t, result.Merge)
}

func TestMe(t *testing.T) {
	f := newAccountFixture(false, nil)
	ctx := context.Background()
	result, err := f.svc.Register(ctx, models.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	id, _ := primitive.ObjectIDFromHex(result.User.ID)
	user, err := f.svc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)

	_, err = f.svc.Me(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
