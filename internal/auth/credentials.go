package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// ErrorKind classifies sign-in failures. The action layer recognizes
// exactly two kinds and converts each to a fixed user-facing string;
// any error that is not an *auth.Error propagates unconverted.
type ErrorKind string

const (
	// KindCredentialsSignin means the email/password pair was rejected.
	KindCredentialsSignin ErrorKind = "CredentialsSignin"
	// KindCallbackRoute covers recognized sign-in failures that are not the
	// user's fault (token issuance, provider hiccups).
	KindCallbackRoute ErrorKind = "CallbackRouteError"
)

// Error is a recognized authentication failure.
type Error struct {
	Kind ErrorKind
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// CredentialsProvider checks email/password pairs against the users table
// and issues session tokens. It deliberately does not reveal whether the
// email or the password was wrong: both cases are KindCredentialsSignin.
type CredentialsProvider struct {
	users     repository.UserRepository
	passwords *PasswordService
	tokens    *TokenService
	logger    *slog.Logger
}

// NewCredentialsProvider wires the provider's dependencies.
func NewCredentialsProvider(
	users repository.UserRepository,
	passwords *PasswordService,
	tokens *TokenService,
	logger *slog.Logger,
) *CredentialsProvider {
	return &CredentialsProvider{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// SignIn verifies the credentials and returns a signed session token.
//
// Failure modes:
//   - unknown email or wrong password → *Error{Kind: KindCredentialsSignin}
//   - token issuance failure          → *Error{Kind: KindCallbackRoute}
//   - anything else (e.g. the database being down) is returned as-is,
//     so the caller's generic error handling takes over.
func (p *CredentialsProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := p.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", &Error{Kind: KindCredentialsSignin}
		}
		return "", fmt.Errorf("auth: looking up user %s: %w", email, err)
	}

	ok, err := p.passwords.Verify(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("auth: verifying password for %s: %w", email, err)
	}
	if !ok {
		p.logger.Info("sign-in rejected", slog.String("email", email))
		return "", &Error{Kind: KindCredentialsSignin}
	}

	token, err := p.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", &Error{Kind: KindCallbackRoute, Err: err}
	}

	p.logger.Info("user signed in",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)
	return token, nil
}
