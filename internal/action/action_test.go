package action

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/auth"
	"github.com/fillemon10/filip-sjolander/internal/model"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// =========================================================================
// MOCKS
// =========================================================================
// Hand-written in-memory fakes for the repository interfaces and the
// cache/session/sign-in collaborators. Each one counts its mutating calls
// so tests can assert "exactly one insert, one invalidation".

type mockInvoiceRepo struct {
	invoices    map[string]*model.Invoice
	createCalls int
	updateCalls int
	deleteCalls int
	failWith    error // when set, every mutation fails with this error
	nextID      int
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{invoices: make(map[string]*model.Invoice)}
}

func (m *mockInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	m.createCalls++
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	inv.ID = "inv-" + strconv.Itoa(m.nextID)
	stored := *inv
	m.invoices[inv.ID] = &stored
	return nil
}

func (m *mockInvoiceRepo) GetByID(_ context.Context, id string) (*model.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, apperror.NotFound("invoice", id)
	}
	result := *inv
	return &result, nil
}

func (m *mockInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	m.updateCalls++
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.invoices[inv.ID]
	if !ok {
		return apperror.NotFound("invoice", inv.ID)
	}
	inv.Date = existing.Date // creation-only field
	stored := *inv
	m.invoices[inv.ID] = &stored
	return nil
}

func (m *mockInvoiceRepo) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.invoices[id]; !ok {
		return apperror.NotFound("invoice", id)
	}
	delete(m.invoices, id)
	return nil
}

func (m *mockInvoiceRepo) ListFiltered(_ context.Context, _ repository.ListOptions) ([]model.InvoiceRow, error) {
	return nil, nil
}
func (m *mockInvoiceRepo) CountFiltered(_ context.Context, _ string) (int, error) { return 0, nil }
func (m *mockInvoiceRepo) Latest(_ context.Context, _ int) ([]model.InvoiceRow, error) {
	return nil, nil
}
func (m *mockInvoiceRepo) Totals(_ context.Context) (int64, int64, int, error) { return 0, 0, 0, nil }

type mockPortfolioRepo struct {
	items       map[string]*model.PortfolioItem
	createCalls int
	updateCalls int
	deleteCalls int
	failWith    error
	nextID      int
}

func newMockPortfolioRepo() *mockPortfolioRepo {
	return &mockPortfolioRepo{items: make(map[string]*model.PortfolioItem)}
}

func (m *mockPortfolioRepo) CreatePortfolioItem(_ context.Context, item *model.PortfolioItem) error {
	m.createCalls++
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	item.ID = "item-" + strconv.Itoa(m.nextID)
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockPortfolioRepo) GetPortfolioItemByID(_ context.Context, id string) (*model.PortfolioItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("portfolio item", id)
	}
	result := *item
	return &result, nil
}

func (m *mockPortfolioRepo) UpdatePortfolioItem(_ context.Context, item *model.PortfolioItem) error {
	m.updateCalls++
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.items[item.ID]
	if !ok {
		return apperror.NotFound("portfolio item", item.ID)
	}
	item.Date = existing.Date
	item.UserID = existing.UserID // creation-only fields
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockPortfolioRepo) DeletePortfolioItem(_ context.Context, id string) error {
	m.deleteCalls++
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.items[id]; !ok {
		return apperror.NotFound("portfolio item", id)
	}
	delete(m.items, id)
	return nil
}

func (m *mockPortfolioRepo) ListPortfolioFiltered(_ context.Context, _ repository.ListOptions) ([]model.PortfolioItem, error) {
	return nil, nil
}
func (m *mockPortfolioRepo) CountPortfolioFiltered(_ context.Context, _ string) (int, error) {
	return 0, nil
}

type mockUserRepo struct {
	byEmail map[string]*model.User
	err     error
}

func (m *mockUserRepo) CreateUser(_ context.Context, _ *model.User) error { return nil }
func (m *mockUserRepo) CountUsers(_ context.Context) (int, error)         { return len(m.byEmail), nil }
func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}
func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("user", email)
}

// mockCache records every invalidated path in order.
type mockCache struct {
	invalidated []string
}

func (m *mockCache) Invalidate(path string) {
	m.invalidated = append(m.invalidated, path)
}

// mockSessions returns a fixed session (nil = anonymous).
type mockSessions struct {
	session *auth.Session
}

func (m *mockSessions) Current(_ context.Context) *auth.Session { return m.session }

// mockSignIn returns a fixed token or error.
type mockSignIn struct {
	token string
	err   error
}

func (m *mockSignIn) SignIn(_ context.Context, _, _ string) (string, error) {
	return m.token, m.err
}

// =========================================================================
// TEST FIXTURE
// =========================================================================

type fixture struct {
	handlers  *Handlers
	invoices  *mockInvoiceRepo
	portfolio *mockPortfolioRepo
	users     *mockUserRepo
	cache     *mockCache
	sessions  *mockSessions
	signIn    *mockSignIn
}

var fixedNow = time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		invoices:  newMockInvoiceRepo(),
		portfolio: newMockPortfolioRepo(),
		users: &mockUserRepo{byEmail: map[string]*model.User{
			"filip@example.com": {ID: "user-1", Name: "Filip", Email: "filip@example.com"},
		}},
		cache:    &mockCache{},
		sessions: &mockSessions{session: &auth.Session{UserID: "user-1", Email: "filip@example.com"}},
		signIn:   &mockSignIn{},
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	f.handlers = New(Deps{
		Invoices:  f.invoices,
		Portfolio: f.portfolio,
		Users:     f.users,
		Cache:     f.cache,
		Sessions:  f.sessions,
		SignIn:    f.signIn,
		Logger:    logger,
	})
	f.handlers.now = func() time.Time { return fixedNow }
	return f
}

func requireRendered(t *testing.T, res Result) State {
	t.Helper()
	if path, ok := res.RedirectPath(); ok {
		t.Fatalf("got Redirect(%s), want Rendered", path)
	}
	return res.State()
}

func requireRedirect(t *testing.T, res Result, wantPath string) {
	t.Helper()
	path, ok := res.RedirectPath()
	if !ok {
		t.Fatalf("got Rendered(%+v), want Redirect(%s)", res.State(), wantPath)
	}
	if path != wantPath {
		t.Fatalf("redirect path = %q, want %q", path, wantPath)
	}
}
