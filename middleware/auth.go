package middleware

import (
	"context"
	"net/http"
	"strings"

	"ramani-storefront/utils"
)

// Key type for context
type contextKey string

const PrincipalContextKey = contextKey("principal")

// Authenticate verifies the bearer token and requires the given role.
// A missing or malformed header is 401, a bad token or wrong role is 403.
func Authenticate(issuer *utils.TokenIssuer, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			principal, err := issuer.Verify(parts[1])
			if err != nil {
				utils.RespondWithError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}
			if principal.Role != role {
				utils.RespondWithError(w, http.StatusForbidden, "Forbidden: insufficient role")
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the principal attached by Authenticate.
func PrincipalFrom(ctx context.Context) (utils.Principal, bool) {
	p, ok := ctx.Value(PrincipalContextKey).(utils.Principal)
	return p, ok
}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p utils.Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, p)
}
