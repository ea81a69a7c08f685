package httpclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth signs a short-lived HS256 token per request and attaches it as a
// bearer Authorization header. Useful against APIs that accept
// service-account JWTs instead of static tokens.
type JWTAuth struct {
	key    []byte
	issuer string
	ttl    time.Duration
	claims map[string]any
}

// NewJWTAuth creates a JWT authentication scheme signing with the given
// HMAC key. Each produced token carries iss, iat and, when ttl is
// positive, exp (now + ttl).
func NewJWTAuth(key []byte, issuer string, ttl time.Duration) *JWTAuth {
	return &JWTAuth{key: key, issuer: issuer, ttl: ttl, claims: map[string]any{}}
}

// WithClaim adds a custom claim to every produced token.
func (a *JWTAuth) WithClaim(name string, value any) *JWTAuth {
	a.claims[name] = value
	return a
}

func (a *JWTAuth) Username() (string, bool) { return a.issuer, a.issuer != "" }
func (a *JWTAuth) Password() (string, bool) { return "", false }

// Header signs a fresh token. Signing failures yield ok=false so the
// request goes out without credentials rather than with a broken header.
func (a *JWTAuth) Header() (string, string, bool) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": a.issuer,
		"iat": now.Unix(),
	}
	if a.ttl > 0 {
		claims["exp"] = now.Add(a.ttl).Unix()
	}
	for name, value := range a.claims {
		claims[name] = value
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", "", false
	}
	return "Authorization", "Bearer " + signed, true
}
