package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/fillemon10/filip-sjolander/internal/model"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// compile-time check that *DB implements repository.CustomerRepository
var _ repository.CustomerRepository = (*DB)(nil)

// ListCustomers returns all customers ordered by name, for the invoice
// form's dropdown. The customer set is small reference data, so no paging.
func (db *DB) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, image_url FROM customers ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("sqlite: scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating customers: %w", err)
	}
	return customers, nil
}

// CountCustomers returns the number of customers, for the overview cards.
func (db *DB) CountCustomers(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting customers: %w", err)
	}
	return count, nil
}

// InsertCustomer adds a customer row. The dashboard has no customer CRUD
// surface; this exists for the admin bootstrap and for tests.
func (db *DB) InsertCustomer(ctx context.Context, c *model.Customer) error {
	if c.ID == "" {
		c.ID = xid.New().String()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting customer: %w", err)
	}
	return nil
}
