package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramani-storefront/utils"
)

func testIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer(
		utils.TokenDomain{Secret: []byte("c")},
		utils.TokenDomain{Secret: []byte("a"), TTL: time.Hour},
	)
}

func protected(issuer *utils.TokenIssuer, role string) http.Handler {
	return Authenticate(issuer, role)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(p.ID))
	}))
}

func TestAuthenticate(t *testing.T) {
	issuer := testIssuer()
	customerToken, err := issuer.Issue(utils.Principal{ID: "u1", Role: utils.RoleCustomer})
	require.NoError(t, err)
	adminToken, err := issuer.Issue(utils.Principal{ID: "a1", Role: utils.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name   string
		role   string
		header string
		status int
		body   string
	}{
		{"missing header", utils.RoleCustomer, "", http.StatusUnauthorized, ""},
		{"not bearer", utils.RoleCustomer, "Basic abc", http.StatusUnauthorized, ""},
		{"bad token", utils.RoleCustomer, "Bearer nope", http.StatusForbidden, ""},
		{"customer ok", utils.RoleCustomer, "Bearer " + customerToken, http.StatusOK, "u1"},
		{"customer on admin route", utils.RoleAdmin, "Bearer " + customerToken, http.StatusForbidden, ""},
		{"admin ok", utils.RoleAdmin, "Bearer " + adminToken, http.StatusOK, "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected(issuer, tt.role).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
