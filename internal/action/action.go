// Package action implements the form actions behind every mutation:
// validate → persist → invalidate cached pages → redirect. One handler per
// mutation, plus Authenticate.
//
// Handlers are HTTP-free: they take parsed form values and return a Result
// that is either Redirect(path) or Rendered(state). Redirecting is a value,
// not a non-local exit, so a handler's terminal states are visible in its
// signature and checkable by the caller. The cache/navigation collaborator
// is an injected interface rather than an ambient framework global.
package action

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/fillemon10/filip-sjolander/internal/repository"
	"github.com/fillemon10/filip-sjolander/internal/validate"
)

// Listing routes, shared by actions (invalidate/redirect targets) and the
// HTTP layer (route registration).
const (
	DashboardPath = "/dashboard"
	InvoicesPath  = "/dashboard/invoices"
	PortfolioPath = "/dashboard/portfolio"
)

// State is what a non-redirecting action renders back into the form:
// per-field errors (validation failures only) and/or a summary message.
type State struct {
	Errors  validate.FieldErrors `json:"errors,omitempty"`
	Message string               `json:"message,omitempty"`
}

// Result is an action's terminal state: either a redirect to a path or a
// state to render. Exactly one of the two is set.
type Result struct {
	redirect string
	state    State
}

// Redirect returns a Result instructing the caller to navigate to path.
func Redirect(path string) Result {
	return Result{redirect: path}
}

// Rendered returns a Result carrying state for the caller to render.
func Rendered(state State) Result {
	return Result{state: state}
}

// RedirectPath returns the redirect target, if this result is a redirect.
func (r Result) RedirectPath() (string, bool) {
	return r.redirect, r.redirect != ""
}

// State returns the render state. Meaningful only when RedirectPath
// reports false.
func (r Result) State() State {
	return r.state
}

// Cache marks a route's cached output stale. Implemented by
// webcache.Cache; fire-and-forget from the handlers' point of view.
type Cache interface {
	Invalidate(path string)
}

// Handlers holds the collaborators every action shares.
type Handlers struct {
	invoices  repository.InvoiceRepository
	portfolio repository.PortfolioRepository
	users     repository.UserRepository
	cache     Cache
	sessions  Sessions
	signIn    CredentialChecker
	timeout   time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// Deps are the dependencies wired into New. Timeout bounds each
// persistence statement; zero means no bound (not recommended — a hung
// database call would block the request indefinitely).
type Deps struct {
	Invoices  repository.InvoiceRepository
	Portfolio repository.PortfolioRepository
	Users     repository.UserRepository
	Cache     Cache
	Sessions  Sessions
	SignIn    CredentialChecker
	Timeout   time.Duration
	Logger    *slog.Logger
}

// New creates the action handlers.
func New(deps Deps) *Handlers {
	return &Handlers{
		invoices:  deps.Invoices,
		portfolio: deps.Portfolio,
		users:     deps.Users,
		cache:     deps.Cache,
		sessions:  deps.Sessions,
		signIn:    deps.SignIn,
		timeout:   deps.Timeout,
		now:       time.Now,
		logger:    deps.Logger,
	}
}

// opContext bounds one persistence statement with the configured timeout.
func (h *Handlers) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

// toCents converts a decimal currency amount to integer cents.
// Rounding absorbs float artifacts: 0.01 becomes exactly 1.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
