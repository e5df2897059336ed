// Package utils issues and verifies the storefront's session tokens.
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// SessionClaims are carried by a storefront session token.  BackendToken is
// the bearer token issued by the backend at login; it is forwarded on
// every backend call made on the user's behalf.
//
// The token is signed, not encrypted: whoever holds it can read every
// claim, BackendToken included.  It must be treated like the backend
// token itself.
type SessionClaims struct {
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role"`
	BackendToken string `json:"btk"`
	jwt.RegisteredClaims
}

// AccessToken is a signed session token and its expiry.
type AccessToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires_at"`
}

const issuer = "cinema-storefront"

// NewSessionToken signs an HS256 token for u.
func NewSessionToken(secret string, u model.User, backendToken string, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	sub := u.ID
	if sub == "" {
		sub = u.Email
	}
	claims := SessionClaims{
		Email:        u.Email,
		Name:         u.FullName,
		Role:         model.RoleFor(u),
		BackendToken: backendToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign session token: %w", err)
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ErrInvalidToken is returned for tokens that fail parsing or validation.
var ErrInvalidToken = errors.New("invalid session token")

// ParseSessionToken verifies raw and returns its claims.
func ParseSessionToken(secret, raw string) (*SessionClaims, error) {
	var claims SessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &claims, nil
}
