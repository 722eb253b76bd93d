package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Roles a principal can carry
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the authenticated caller of a request
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Claims represents the JWT claims
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// TokenDomain is the signing secret and lifetime of one role's tokens.
// A zero TTL issues tokens without an expiry.
type TokenDomain struct {
	Secret []byte
	TTL    time.Duration
}

// TokenIssuer signs and verifies session tokens for every role
type TokenIssuer struct {
	domains map[string]TokenDomain
	now     func() time.Time
}

func NewTokenIssuer(customer, admin TokenDomain) *TokenIssuer {
	return &TokenIssuer{
		domains: map[string]TokenDomain{
			RoleCustomer: customer,
			RoleAdmin:    admin,
		},
		now: time.Now,
	}
}

// Issue signs a token for p using the domain of p's role.
func (ti *TokenIssuer) Issue(p Principal) (string, error) {
	domain, ok := ti.domains[p.Role]
	if !ok {
		return "", fmt.Errorf("unknown role %q", p.Role)
	}
	now := ti.now()
	claims := &Claims{
		Email: p.Email,
		Role:  p.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:  p.ID,
			IssuedAt: now.Unix(),
		},
	}
	if domain.TTL > 0 {
		claims.ExpiresAt = now.Add(domain.TTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(domain.Secret)
}

// Verify parses tokenStr, picking the secret from the role it claims.
func (ti *TokenIssuer) Verify(tokenStr string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		domain, ok := ti.domains[claims.Role]
		if !ok {
			return nil, fmt.Errorf("unknown role %q", claims.Role)
		}
		return domain.Secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
