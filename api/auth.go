/*
auth.go - Session tokens and the bearer-auth middleware

PURPOSE:
  Once the worker.Directory credential gate passes, the API issues a
  signed JWT carrying the passport number and role. Subsequent requests
  present it as a bearer token; the middleware verifies the signature and
  stores the claims on the request context.

  The token replaces the cached "current user" snapshot a single-device
  client would otherwise keep: it only names the identity, the record
  itself is always re-read from the directory.
*/
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/pan-asia/worker-portal/worker"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Claims is the authorization payload transmitted via the JWT.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

// IsAdmin reports whether the claims carry the administrative role.
func (c *Claims) IsAdmin() bool { return c.Role == string(worker.RoleAdmin) }

// TokenAuthority signs and verifies session tokens.
type TokenAuthority struct {
	Issuer     string
	SigningKey []byte
	Expiration time.Duration
}

// Generate issues a signed token for the authenticated identity.
func (ta *TokenAuthority) Generate(w worker.Worker, now time.Time) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    ta.Issuer,
			Subject:   w.Key(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ta.Expiration).Unix(),
		},
		Role: string(w.Role),
	}
	if claims.Role == "" {
		claims.Role = string(worker.RoleWorker)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ta.SigningKey)
}

// Verify parses and validates a token string.
func (ta *TokenAuthority) Verify(tokenString string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ta.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Middleware enforces bearer auth and stores the claims on the context.
func (ta *TokenAuthority) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}
		claims, err := ta.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin claims. Must sit behind Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := contextClaims(r)
		if claims == nil || !claims.IsAdmin() {
			writeError(w, http.StatusForbidden, "Administrator access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func contextClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*Claims)
	return claims
}
