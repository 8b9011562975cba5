package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/mcoot/skyjoscore/internal/model"
)

type contextKey string

const (
	sessionCookieName     = "skyjo_session"
	sessionCodeContextKey = contextKey("sessionCode")
	sessionCookieMaxAge   = 30 * 24 * time.Hour
)

// GetSessionCode retrieves the remembered session code from the request context
// Returns empty string if the browser has no active session
func GetSessionCode(ctx context.Context) model.SessionCode {
	code, _ := ctx.Value(sessionCodeContextKey).(model.SessionCode)
	return code
}

// SetSessionCookie remembers the session code in the browser
func SetSessionCookie(w http.ResponseWriter, code model.SessionCode) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    string(code),
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie forgets the remembered session code
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCode returns middleware that reads the remembered session code cookie
// and adds it to the request context
func SessionCode() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				ctx = context.WithValue(ctx, sessionCodeContextKey, model.SessionCode(cookie.Value))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
