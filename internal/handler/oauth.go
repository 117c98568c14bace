package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/fillemon10/filip-sjolander/internal/action"
	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/auth"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// OAuthHandler runs the GitHub sign-in flow. GitHub is an alternative
// front door to the same accounts: the callback maps the GitHub profile's
// email onto an existing user row and never creates accounts.
type OAuthHandler struct {
	github   *auth.GitHubProvider
	tokens   *auth.TokenService
	users    repository.UserRepository
	renderer *Renderer
	logger   *slog.Logger
}

func NewOAuthHandler(
	github *auth.GitHubProvider,
	tokens *auth.TokenService,
	users repository.UserRepository,
	renderer *Renderer,
	logger *slog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		github:   github,
		tokens:   tokens,
		users:    users,
		renderer: renderer,
		logger:   logger,
	}
}

const oauthStateCookie = "oauth_state"

// HandleGitHubLogin redirects the browser to GitHub's authorization page.
// The random state value goes into a short-lived cookie and is checked on
// callback, which is what stops CSRF on the flow.
//
// HTTP: GET /auth/github/login
func (h *OAuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the flow: state check, code exchange,
// email → user lookup, session cookie, redirect to the dashboard. A GitHub
// account whose email matches no user re-renders the login page with the
// same message a bad password gets.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *OAuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.logger.Warn("OAuth callback with bad state")
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("OAuth exchange failed", slog.String("error", err.Error()))
		h.loginFailed(w, "Something went wrong.")
		return
	}

	if ghUser.Email == "" {
		h.logger.Warn("GitHub profile has no public email", slog.String("login", ghUser.Login))
		h.loginFailed(w, "Invalid credentials.")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), ghUser.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.logger.Warn("GitHub email matches no user", slog.String("email", ghUser.Email))
			h.loginFailed(w, "Invalid credentials.")
			return
		}
		h.logger.Error("failed to look up user", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		h.logger.Error("failed to issue session token", slog.String("error", err.Error()))
		h.loginFailed(w, "Something went wrong.")
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, action.DashboardPath, http.StatusSeeOther)
}

func (h *OAuthHandler) loginFailed(w http.ResponseWriter, message string) {
	h.renderer.Render(w, http.StatusUnauthorized, "login", map[string]any{
		"Title":   "Log in",
		"Message": message,
	})
}
