package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityCapture(userID *string, roles *[]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*userID = GetUserID(r.Context())
		*roles = GetUserRoles(r.Context())
	})
}

func TestAuthHeaderMode(t *testing.T) {
	var userID string
	var roles []string
	handler := Auth(AuthConfig{})(identityCapture(&userID, &roles))

	req := httptest.NewRequest(http.MethodGet, "/api/customer", nil)
	req.Header.Set(UserHeader, "alice")
	req.Header.Set(RolesHeader, "Sales User, Accounts User")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", userID)
	assert.Equal(t, []string{"Sales User", "Accounts User"}, roles)
}

func TestAuthHeaderModeMissingUser(t *testing.T) {
	handler := Auth(AuthConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/customer", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSkipPaths(t *testing.T) {
	called := false
	handler := Auth(AuthConfig{SkipPaths: []string{"/api/health"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthJWTMode(t *testing.T) {
	const secret = "test-secret"
	var userID string
	var roles []string
	handler := Auth(AuthConfig{Secret: secret})(identityCapture(&userID, &roles))

	token := signToken(t, secret, jwt.MapClaims{
		"user_id": "bob",
		"roles":   []interface{}{"HR Manager"},
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/employee", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", userID)
	assert.Equal(t, []string{"HR Manager"}, roles)
}

func TestAuthJWTRejections(t *testing.T) {
	const secret = "test-secret"
	handler := Auth(AuthConfig{Secret: secret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a rejected token")
	}))

	expired := signToken(t, secret, jwt.MapClaims{
		"user_id": "bob",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{"user_id": "bob"})
	noUser := signToken(t, secret, jwt.MapClaims{"roles": []interface{}{"HR Manager"}})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongKey},
		{"expired", "Bearer " + expired},
		{"missing user claim", "Bearer " + noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/employee", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthJWTHeaderFallbackIgnored(t *testing.T) {
	handler := Auth(AuthConfig{Secret: "test-secret"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("forwarded headers must not bypass token verification")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/employee", nil)
	req.Header.Set(UserHeader, "mallory")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
