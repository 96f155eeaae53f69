package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/seeksy/rate-desk/internal/config"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the caller's tenant selection for the lifetime of one request.
// Row-level security in the database remains the enforcement point; the
// service only carries the ids for logging.
type Session struct {
	UserID   string
	TenantID string
}

// Claims are the JWT claims the rate desk reads
type Claims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// WithSession stores a session in the context. If an outer middleware has
// already reserved a session slot, that slot is filled in place so the outer
// handler sees it too.
func WithSession(ctx context.Context, s Session) context.Context {
	if slot, ok := ctx.Value(sessionKey).(*Session); ok {
		*slot = s
		return ctx
	}
	return context.WithValue(ctx, sessionKey, &s)
}

// SessionFrom returns the session stored in ctx, if any
func SessionFrom(ctx context.Context) (Session, bool) {
	slot, ok := ctx.Value(sessionKey).(*Session)
	if !ok || *slot == (Session{}) {
		return Session{}, false
	}
	return *slot, true
}

func reserveSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey, &Session{})
}

// AuthMiddleware validates HS256 bearer tokens and attaches the session
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.AuthDisabled {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(tokenString, cfg.JWTSecret)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := WithSession(r.Context(), Session{UserID: claims.Subject, TenantID: claims.TenantID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseToken verifies a token signed with secret and returns its claims
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
