// Package jwtinspect reads claims from a JWT without verifying its signature.
//
// It exists for client-side hygiene only: deciding whether a persisted token
// is worth presenting to the service. Authorization decisions stay with the
// service, which verifies signatures itself.
package jwtinspect

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed indicates the token could not be parsed as a JWT.
var ErrMalformed = errors.New("jwtinspect: malformed token")

// ExpiresAt returns the expiry time carried in the token's claims. The
// returned bool is false when the token has no exp claim.
func ExpiresAt(token string) (time.Time, bool, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, ErrMalformed
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false, nil
	}

	return exp.Time, true, nil
}

// Expired reports whether the token's exp claim is at or before the given
// time. Tokens without an exp claim, and tokens that are not JWTs at all,
// are treated as not expired; the service stays the authority on those.
func Expired(token string, at time.Time) bool {
	exp, ok, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	if !ok {
		return false
	}
	return !exp.After(at)
}
