package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"ironline-site/internal/model"
	"ironline-site/internal/service"
	"ironline-site/pkg/apierror"
)

// SessionDataKey is the key for storing admin session data in request context.
const SessionDataKey contextKey = "admin_session"

// AdminTokenHeader carries the admin session token.
const AdminTokenHeader = "X-Admin-Token"

// TokenValidator validates admin session tokens.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*model.SessionData, error)
}

// AdminToken extracts the admin token from X-Admin-Token or an
// Authorization bearer header.
func AdminToken(r *http.Request) string {
	if token := r.Header.Get(AdminTokenHeader); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// Authorize validates token and returns the session it belongs to. The
// returned error is ready to be written to the client.
func Authorize(ctx context.Context, sessions TokenValidator, token string) (*model.SessionData, *apierror.Error) {
	if token == "" {
		return nil, apierror.Unauthorized("Admin token required. Use X-Admin-Token or Authorization: Bearer.")
	}
	if sessions == nil {
		return nil, apierror.Forbidden("admin routes disabled")
	}

	data, err := sessions.Validate(ctx, token)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidToken) {
			log.Printf("[Auth] Token validation error: %v", err)
			return nil, apierror.ServiceUnavailable("session store unavailable")
		}
		return nil, apierror.Unauthorized("Invalid or expired token")
	}
	return data, nil
}

// RequireAdmin rejects requests without a valid admin session token.
func RequireAdmin(sessions TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, apiErr := Authorize(r.Context(), sessions, AdminToken(r))
			if apiErr != nil {
				writeError(w, apiErr)
				return
			}

			ctx := context.WithValue(r.Context(), SessionDataKey, data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionDataFromContext retrieves admin session data from request context.
func GetSessionDataFromContext(ctx context.Context) *model.SessionData {
	if data, ok := ctx.Value(SessionDataKey).(*model.SessionData); ok {
		return data
	}
	return nil
}
