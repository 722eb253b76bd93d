package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramani-storefront/config"
	"ramani-storefront/models"
	"ramani-storefront/utils"
)

func newAdminAuth(t *testing.T) (*AdminAuthService, *fakeAdmins, *recordingSender, time.Time) {
	t.Helper()
	admins := newFakeAdmins()
	sender := &recordingSender{}
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAdminAuthService(admins, testIssuer(), FixedOtpGenerator{Code: "654321"}, sender, 5*time.Minute)
	svc.now = fixedClock(now)

	_, err := svc.Signup(context.Background(), models.AdminSignupRequest{
		Email: "owner@ramani.in", Password: "admin123", Mobile: "9876543210",
	})
	require.NoError(t, err)
	return svc, admins, sender, now
}

func TestAdminLogin(t *testing.T) {
	svc, admins, sender, _ := newAdminAuth(t)
	ctx := context.Background()

	challenge, err := svc.Start(ctx, models.AdminStartRequest{Email: "owner@ramani.in", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "******3210", challenge.MaskedMobile)
	assert.Equal(t, "654321", sender.code)
	assert.Equal(t, "654321", admins.byEmail["owner@ramani.in"].OTP)

	_, err = svc.Verify(ctx, models.AdminVerifyRequest{Email: "owner@ramani.in", OTP: "111111"})
	assert.ErrorIs(t, err, ErrOTPInvalid)

	session, err := svc.Verify(ctx, models.AdminVerifyRequest{Email: "owner@ramani.in", OTP: "654321"})
	require.NoError(t, err)
	assert.Empty(t, session.Admin.OTP)
	assert.Empty(t, admins.byEmail["owner@ramani.in"].OTP)

	principal, err := testIssuer().Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleAdmin, principal.Role)

	// The code is single use.
	_, err = svc.Verify(ctx, models.AdminVerifyRequest{Email: "owner@ramani.in", OTP: "654321"})
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	svc, _, sender, _ := newAdminAuth(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, models.AdminStartRequest{Email: "owner@ramani.in", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Start(ctx, models.AdminStartRequest{Email: "other@ramani.in", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, sender.code)
}

func TestAdminOTPExpires(t *testing.T) {
	svc, admins, _, now := newAdminAuth(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, models.AdminStartRequest{Email: "owner@ramani.in", Password: "admin123"})
	require.NoError(t, err)

	svc.now = fixedClock(now.Add(5 * time.Minute))
	_, err = svc.Verify(ctx, models.AdminVerifyRequest{Email: "owner@ramani.in", OTP: "654321"})
	assert.ErrorIs(t, err, ErrOTPInvalid)
	assert.Nil(t, admins.byEmail["owner@ramani.in"].OTPExpiresAt)
}

func TestAdminSignupDuplicate(t *testing.T) {
	svc, _, _, _ := newAdminAuth(t)
	_, err := svc.Signup(context.Background(), models.AdminSignupRequest{
		Email: "OWNER@ramani.in", Password: "admin123", Mobile: "9876543210",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestEnsureSeedAdmin(t *testing.T) {
	admins := newFakeAdmins()
	svc := NewAdminAuthService(admins, testIssuer(), FixedOtpGenerator{Code: "1"}, LogOtpSender{}, time.Minute)
	ctx := context.Background()
	seed := config.AdminSeed{Email: "seed@ramani.in", Password: "admin123", Mobile: "9876543210"}

	require.NoError(t, svc.EnsureSeedAdmin(ctx, seed))
	require.NoError(t, svc.EnsureSeedAdmin(ctx, seed))
	assert.Len(t, admins.byEmail, 1)

	require.NoError(t, svc.EnsureSeedAdmin(ctx, config.AdminSeed{}))
	assert.Len(t, admins.byEmail, 1)
}
