package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer(
		TokenDomain{Secret: []byte("customer-secret")},
		TokenDomain{Secret: []byte("admin-secret"), TTL: 24 * time.Hour},
	)
}

func TestIssueAndVerifyCustomer(t *testing.T) {
	ti := newTestIssuer()
	token, err := ti.Issue(Principal{ID: "u1", Email: "a@b.com", Role: RoleCustomer})
	require.NoError(t, err)

	p, err := ti.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{ID: "u1", Email: "a@b.com", Role: RoleCustomer}, p)
}

func TestCustomerTokenHasNoExpiry(t *testing.T) {
	ti := newTestIssuer()
	ti.now = func() time.Time { return time.Now().Add(-365 * 24 * time.Hour) }
	token, err := ti.Issue(Principal{ID: "u1", Role: RoleCustomer})
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.NoError(t, err)
}

func TestAdminTokenExpires(t *testing.T) {
	ti := newTestIssuer()
	ti.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	token, err := ti.Issue(Principal{ID: "a1", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongDomainSecret(t *testing.T) {
	// A customer-domain signer minting an admin claim must not verify.
	forged := NewTokenIssuer(
		TokenDomain{Secret: []byte("customer-secret")},
		TokenDomain{Secret: []byte("customer-secret")},
	)
	token, err := forged.Issue(Principal{ID: "u1", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = newTestIssuer().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueUnknownRole(t *testing.T) {
	_, err := newTestIssuer().Issue(Principal{ID: "x", Role: "guest"})
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := newTestIssuer().Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
