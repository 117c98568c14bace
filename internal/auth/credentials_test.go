package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/model"
)

// mockUserRepo serves a single fixed user, or a forced error.
type mockUserRepo struct {
	user *model.User
	err  error
}

func (m *mockUserRepo) CreateUser(_ context.Context, _ *model.User) error { return nil }
func (m *mockUserRepo) CountUsers(_ context.Context) (int, error)         { return 1, nil }

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, apperror.NotFound("user", id)
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, apperror.NotFound("user", email)
}

func newTestProvider(t *testing.T, repo *mockUserRepo) *CredentialsProvider {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewCredentialsProvider(repo, newTestPasswordService(), newTestTokenService(t), logger)
}

func testUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := newTestPasswordService().Hash(password)
	require.NoError(t, err)
	return &model.User{ID: "user-1", Name: "Filip", Email: "filip@example.com", PasswordHash: hash}
}

func TestSignIn_Success(t *testing.T) {
	user := testUser(t, "hunter22")
	p := newTestProvider(t, &mockUserRepo{user: user})

	token, err := p.SignIn(context.Background(), "filip@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The token must resolve back to the user's session.
	session, err := newTestTokenService(t).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "filip@example.com", session.Email)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	p := newTestProvider(t, &mockUserRepo{})

	_, err := p.SignIn(context.Background(), "nobody@example.com", "whatever")
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, KindCredentialsSignin, authErr.Kind)
}

func TestSignIn_WrongPassword(t *testing.T) {
	user := testUser(t, "hunter22")
	p := newTestProvider(t, &mockUserRepo{user: user})

	_, err := p.SignIn(context.Background(), "filip@example.com", "wrong")
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, KindCredentialsSignin, authErr.Kind)
}

func TestSignIn_RepositoryFailurePropagates(t *testing.T) {
	// A database failure is not an authentication failure: it must NOT be
	// converted into an *auth.Error.
	dbErr := errors.New("disk on fire")
	p := newTestProvider(t, &mockUserRepo{err: dbErr})

	_, err := p.SignIn(context.Background(), "filip@example.com", "hunter22")
	require.Error(t, err)

	var authErr *Error
	assert.False(t, errors.As(err, &authErr), "database errors must stay unconverted")
	assert.ErrorIs(t, err, dbErr)
}
