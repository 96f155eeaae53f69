package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/seeksy/rate-desk/internal/config"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		TenantID: "tenant-42",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newRouter(cfg *config.Config, log *logrus.Logger, seen *Session) *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging(log, nil))
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(AuthMiddleware(cfg))
	protected.HandleFunc("/rate-desk", func(w http.ResponseWriter, r *http.Request) {
		if s, ok := SessionFrom(r.Context()); ok {
			*seen = s
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	require := require.New(t)
	log, hook := logtest.NewNullLogger()
	var seen Session
	router := newRouter(&config.Config{JWTSecret: testSecret}, log, &seen)

	req := httptest.NewRequest(http.MethodGet, "/rate-desk", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(http.StatusNoContent, rec.Code)
	require.Equal(Session{UserID: "user-7", TenantID: "tenant-42"}, seen)
	require.NotEmpty(rec.Header().Get(RequestIDHeader))

	entry := hook.LastEntry()
	require.NotNil(entry)
	require.Equal("tenant-42", entry.Data["tenant_id"])
	require.Equal("/rate-desk", entry.Data["route"])
	require.Equal(http.StatusNoContent, entry.Data["status"])
}

func TestAuthMiddlewareRejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"wrong secret":   "Bearer " + signToken(t, "other-secret", validClaims()),
		"expired":        "Bearer " + signToken(t, testSecret, expired),
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			log, _ := logtest.NewNullLogger()
			var seen Session
			router := newRouter(&config.Config{JWTSecret: testSecret}, log, &seen)

			req := httptest.NewRequest(http.MethodGet, "/rate-desk", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, Session{}, seen)
		})
	}
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	var seen Session
	router := newRouter(&config.Config{AuthDisabled: true}, log, &seen)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rate-desk", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoggingKeepsCallerRequestID(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	var seen Session
	router := newRouter(&config.Config{AuthDisabled: true}, log, &seen)

	req := httptest.NewRequest(http.MethodGet, "/rate-desk", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}
