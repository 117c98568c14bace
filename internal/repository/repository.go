// Package repository declares the storage interfaces the rest of the app
// programs against. The concrete implementation lives in repository/sqlite;
// tests inject in-memory mocks. Actions and handlers never import the
// sqlite package directly.
package repository

import (
	"context"

	"github.com/fillemon10/filip-sjolander/internal/model"
)

// ItemsPerPage is the page size used by both listing screens.
const ItemsPerPage = 6

// ListOptions carries search and pagination parameters for listing queries.
// Query matches case-insensitively against the visible columns of the
// listing (for invoices that includes the joined customer name and email).
type ListOptions struct {
	Query  string
	Limit  int
	Offset int
}

// InvoiceRepository persists invoices and serves the invoice screens.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	Update(ctx context.Context, inv *model.Invoice) error
	Delete(ctx context.Context, id string) error

	// ListFiltered returns one page of invoices joined with their customers,
	// newest first. CountFiltered returns the total number of matches so the
	// handler can compute page counts.
	ListFiltered(ctx context.Context, opts ListOptions) ([]model.InvoiceRow, error)
	CountFiltered(ctx context.Context, query string) (int, error)

	// Latest returns the most recent invoices for the dashboard overview.
	Latest(ctx context.Context, limit int) ([]model.InvoiceRow, error)

	// Totals returns the summed amounts (in cents) of paid and pending
	// invoices plus the total invoice count, for the overview cards.
	Totals(ctx context.Context) (paid, pending int64, count int, err error)
}

// PortfolioRepository persists portfolio items and serves the portfolio
// screens. Method names carry the entity because the sqlite implementation
// backs every repository with one DB type.
type PortfolioRepository interface {
	CreatePortfolioItem(ctx context.Context, item *model.PortfolioItem) error
	GetPortfolioItemByID(ctx context.Context, id string) (*model.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, item *model.PortfolioItem) error
	DeletePortfolioItem(ctx context.Context, id string) error

	ListPortfolioFiltered(ctx context.Context, opts ListOptions) ([]model.PortfolioItem, error)
	CountPortfolioFiltered(ctx context.Context, query string) (int, error)
}

// CustomerRepository reads customer reference data (invoice form dropdown,
// overview card count). There is no customer CRUD in this dashboard.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CountCustomers(ctx context.Context) (int, error)
}

// UserRepository manages dashboard accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}
