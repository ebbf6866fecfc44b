// Package auth inspects the bearer tokens returned by the LedgerDesk login
// endpoint.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when a token is not a three-segment JWT.
var ErrNotJWT = errors.New("auth: token is not a JWT")

// Claims encodes JWT claims embedded into LedgerDesk access tokens.
//
// The signature is not verified: tokens are opaque to the client and the API
// validates them. Claims are read to schedule re-login before expiry.
type Claims struct {
	AccountID string   `json:"account_id,omitempty"`
	UserID    string   `json:"uid,omitempty"`
	Role      string   `json:"role,omitempty"`
	Scopes    []string `json:"scopes,omitempty"`

	jwt.RegisteredClaims
}

// ParseClaims decodes the claims of token without verifying its signature.
// A leading "Bearer " prefix is ignored.
func ParseClaims(token string) (*Claims, error) {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(t), "bearer ") {
		t = strings.TrimSpace(t[7:])
	}
	if strings.Count(t, ".") != 2 {
		return nil, ErrNotJWT
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t, claims); err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAt() time.Time {
	if c == nil || c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// ExpiresWithin reports whether the token expires within d of now. Tokens
// without an exp claim never expire.
func (c *Claims) ExpiresWithin(d time.Duration, now time.Time) bool {
	exp := c.ExpiresAt()
	if exp.IsZero() {
		return false
	}
	return !now.Add(d).Before(exp)
}
