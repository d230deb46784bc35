package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rahulm682/VideoAppBackend/internal/httputil"
	"github.com/rahulm682/VideoAppBackend/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ViewerIDKey is the context key for the authenticated viewer's user ID
	ViewerIDKey contextKey = "viewer_id"
)

// AuthMiddleware validates JWT tokens and requires a viewer.
// Checks Authorization header first (mobile), then falls back to cookie (web).
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewerID, ok, failCode := viewerFromRequest(r, jwtSecret)
			if !ok {
				if failCode == "" {
					httputil.WriteUnauthorized(w, "Missing authentication token")
					return
				}
				message := "Invalid authentication token"
				if failCode == model.CodeTokenExpired {
					message = "Access token has expired"
				}
				httputil.WriteUnauthorizedWithCode(w, failCode, message)
				return
			}

			ctx := context.WithValue(r.Context(), ViewerIDKey, viewerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware resolves the viewer when a valid token is present
// and passes the request through anonymously otherwise. Read endpoints use
// it to derive viewer-relative fields without requiring login.
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewerID, ok, _ := viewerFromRequest(r, jwtSecret); ok {
				ctx := context.WithValue(r.Context(), ViewerIDKey, viewerID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// viewerFromRequest extracts and validates the token. Returns the viewer ID,
// whether one was resolved, and a token error code when validation failed.
func viewerFromRequest(r *http.Request, jwtSecret string) (int64, bool, string) {
	var tokenString string

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		cookie, err := r.Cookie("access_token")
		if err == nil && cookie.Value != "" {
			tokenString = cookie.Value
		}
	}

	if tokenString == "" {
		return 0, false, ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return 0, false, model.CodeTokenExpired
		}
		return 0, false, model.CodeTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, false, model.CodeTokenInvalid
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false, model.CodeTokenInvalid
	}

	return int64(userIDFloat), true, ""
}

// GetViewerIDFromContext extracts the viewer ID from the request context.
// Returns 0 and false for anonymous requests.
func GetViewerIDFromContext(ctx context.Context) (int64, bool) {
	viewerID, ok := ctx.Value(ViewerIDKey).(int64)
	return viewerID, ok
}
