package auth

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the HttpOnly cookie holding the session JWT.
const SessionCookie = "session"

// contextKey is unexported so only this package can read or write session
// values in a request context.
type contextKey string

const sessionKey contextKey = "session"

// RequireAuth guards the dashboard pages. A request without a valid session
// cookie is redirected to the login page; otherwise the session is stored
// in the request context for handlers to read.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := extractSession(r, tokens)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithSession returns a context carrying the given session.
// Exposed for tests and for the action layer's session reader.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext retrieves the current session, or nil when the
// request is anonymous.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// SetSessionCookie writes the session JWT as an HttpOnly, SameSite=Lax
// cookie. HttpOnly keeps scripts away from the token; Lax stops it being
// sent on cross-site POSTs.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie (sign-out).
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func extractSession(r *http.Request, tokens *TokenService) (*Session, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, err
	}
	return tokens.Validate(cookie.Value)
}
