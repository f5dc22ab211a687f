package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Headers consulted when no JWT secret is configured. Token issuance is an
// external concern; this middleware only consumes an identity, either from a
// signed token or, in trusted-proxy setups, from forwarded headers.
const (
	UserHeader  = "X-Docflow-User"
	RolesHeader = "X-Docflow-Roles"
)

// AuthConfig holds identity-extraction settings
type AuthConfig struct {
	// Secret verifies HMAC-signed bearer tokens. Empty switches to the
	// forwarded-header mode above.
	Secret string

	// SkipPaths bypass identity extraction entirely (health checks)
	SkipPaths []string
}

// Identity identifies the caller of one request
type Identity struct {
	UserID string
	Roles  []string
}

// Auth extracts the caller's (userId, roles) pair and stores it on the
// request context. Requests without a usable identity are rejected before
// any generated operation runs.
func Auth(config AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range config.SkipPaths {
				if r.URL.Path == skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			identity, err := extractIdentity(r, config)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractIdentity(r *http.Request, config AuthConfig) (Identity, error) {
	if config.Secret == "" {
		user := r.Header.Get(UserHeader)
		if user == "" {
			return Identity{}, fmt.Errorf("missing %s header", UserHeader)
		}
		var roles []string
		if raw := r.Header.Get(RolesHeader); raw != "" {
			for _, role := range strings.Split(raw, ",") {
				if role = strings.TrimSpace(role); role != "" {
					roles = append(roles, role)
				}
			}
		}
		return Identity{UserID: user, Roles: roles}, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Identity{}, fmt.Errorf("authorization required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return Identity{}, fmt.Errorf("invalid authorization format")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(config.Secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	var roles []string
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if role, ok := raw.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return Identity{UserID: userID, Roles: roles}, nil
}

// WithIdentity stores the caller identity on a context
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID, identity.UserID)
	return context.WithValue(ctx, contextKeyUserRoles, identity.Roles)
}

// GetUserID returns the caller's user id from the context, or ""
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserRoles returns the caller's role set from the context
func GetUserRoles(ctx context.Context) []string {
	if roles, ok := ctx.Value(contextKeyUserRoles).([]string); ok {
		return roles
	}
	return nil
}
