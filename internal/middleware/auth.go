package middleware

import (
	"context"
	"net/http"
)

// SessionReader defines the session surface the auth middleware needs
type SessionReader interface {
	UserID(r *http.Request) string
	Error(w http.ResponseWriter, r *http.Request, msg string)
	RememberURL(w http.ResponseWriter, r *http.Request, url string)
}

// WithUser puts the signed-in user's ID (if any) into the request context.
// It never blocks the request; use RequireLogin for that.
func WithUser(sessions SessionReader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := sessions.UserID(r); userID != "" {
				ctx := context.WithValue(r.Context(), UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// RequireLogin redirects anonymous users to the login page, remembering
// where they were headed so login can send them back.
func RequireLogin(sessions SessionReader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserID(r.Context()) == "" {
				sessions.RememberURL(w, r, r.URL.RequestURI())
				sessions.Error(w, r, "You must be logged in to do that")
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
