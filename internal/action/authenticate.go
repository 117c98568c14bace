package action

import (
	"context"
	"errors"

	"github.com/fillemon10/filip-sjolander/internal/auth"
)

// CredentialChecker verifies a sign-in attempt and returns a session
// token. Implemented by auth.CredentialsProvider.
type CredentialChecker interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// AuthResult is Authenticate's success-or-message outcome. Exactly one of
// Token (sign-in succeeded, caller sets the session cookie and redirects)
// and Message (sign-in failed, caller re-renders the login form) is set.
type AuthResult struct {
	Token   string
	Message string
}

// Authenticate delegates the credential check to the provider and converts
// its recognized failure kinds into fixed user-facing strings. Errors the
// provider does not classify — a failing database, for instance — are
// returned as-is and bubble up to the server's generic error handling;
// they are deliberately not dressed up as sign-in feedback.
func (h *Handlers) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := h.signIn.SignIn(ctx, email, password)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			switch authErr.Kind {
			case auth.KindCredentialsSignin:
				return &AuthResult{Message: "Invalid credentials."}, nil
			default:
				return &AuthResult{Message: "Something went wrong."}, nil
			}
		}
		return nil, err
	}

	return &AuthResult{Token: token}, nil
}
