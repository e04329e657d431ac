// Package token holds helpers for working with the marketplace bearer token.
//
// The upstream API is the only party that verifies signatures; everything in
// this package decodes the payload for display and best-effort claim reads
// and must never be treated as a security boundary.
package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the upstream JWT payload the gateway cares about.
type Claims struct {
	Username string
	UserID   string
	Role     string
	Exp      time.Time
}

// Decode extracts the payload of a JWT without verifying its signature.
// A "Bearer " prefix is tolerated and stripped. Returns nil when the token
// is empty or structurally not a JWT.
func Decode(raw string) *Claims {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}

	out := &Claims{}
	if v, ok := claims["username"].(string); ok {
		out.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	switch v := claims["user_id"].(type) {
	case string:
		out.UserID = v
	case float64:
		out.UserID = strconv.FormatInt(int64(v), 10)
	}
	if out.UserID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			out.UserID = sub
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Exp = exp.Time
	}
	return out
}

// Expired reports whether the token's exp claim lies in the past. Tokens
// without a parseable exp are treated as expired, matching a lenient
// display-only reading: callers never gate access on this.
func Expired(raw string, now time.Time) bool {
	c := Decode(raw)
	if c == nil || c.Exp.IsZero() {
		return true
	}
	return now.After(c.Exp)
}
