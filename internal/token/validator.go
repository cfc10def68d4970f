// Package token inspects bearer tokens issued by the recruitment API.
//
// The portal never verifies signatures; it only reads the expiry claim so a
// doomed upstream call can be skipped. The recruitment API re-validates every
// token for real, so this check is a UX optimization, not a security boundary.
package token

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Expired reports whether tok should be treated as expired right now.
func Expired(tok string) bool {
	return ExpiredAt(tok, time.Now())
}

// ExpiredAt reports whether tok should be treated as expired at the given
// instant. It fails closed: empty, malformed or undecodable tokens, and
// tokens without an exp claim, all count as expired.
func ExpiredAt(tok string, now time.Time) bool {
	if tok == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.Time.After(now)
}
