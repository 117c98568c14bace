package handler

import (
	"log/slog"
	"net/http"

	"github.com/fillemon10/filip-sjolander/internal/action"
	"github.com/fillemon10/filip-sjolander/internal/auth"
)

// LoginHandler serves the login form and processes credential sign-in.
type LoginHandler struct {
	actions  *action.Handlers
	renderer *Renderer
	logger   *slog.Logger
}

func NewLoginHandler(actions *action.Handlers, renderer *Renderer, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		actions:  actions,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleLoginPage serves the login form.
//
// HTTP: GET /login
func (h *LoginHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login", map[string]any{
		"Title": "Log in",
	})
}

// HandleLogin processes a credential sign-in attempt. Success sets the
// session cookie and redirects to the dashboard; a rejected attempt
// re-renders the form with the failure message.
//
// HTTP: POST /login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := r.PostForm.Get("email")
	password := r.PostForm.Get("password")

	result, err := h.actions.Authenticate(r.Context(), email, password)
	if err != nil {
		h.logger.Error("sign-in failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if result.Message != "" {
		h.renderer.Render(w, http.StatusUnauthorized, "login", map[string]any{
			"Title":   "Log in",
			"Message": result.Message,
			"Email":   email,
		})
		return
	}

	auth.SetSessionCookie(w, result.Token)
	http.Redirect(w, r, action.DashboardPath, http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /logout
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
