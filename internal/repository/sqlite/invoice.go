package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/model"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// compile-time check that *DB implements repository.InvoiceRepository
var _ repository.InvoiceRepository = (*DB)(nil)

// invoiceRowColumns is the joined projection both listing queries share.
const invoiceRowColumns = `
	invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date,
	customers.name, customers.email, customers.image_url`

// Create inserts a new invoice. The ID is generated here (xid: short,
// URL-safe, sortable by creation time); the caller's struct is updated
// in place so the handler can reference it afterwards.
func (db *DB) Create(ctx context.Context, inv *model.Invoice) error {
	inv.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO invoices (id, customer_id, amount, status, date)
		 VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating invoice: %w", err)
	}
	return nil
}

// GetByID retrieves a single invoice. Returns apperror.ErrNotFound when no
// row matches — the edit page turns that into a 404.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var inv model.Invoice
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, customer_id, amount, status, date
		 FROM invoices WHERE id = ?`,
		id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &inv.Date)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("invoice", id)
		}
		return nil, fmt.Errorf("sqlite: getting invoice %s: %w", id, err)
	}
	return &inv, nil
}

// Update replaces every mutable field of an invoice. The date is assigned
// at creation and deliberately left out of the SET list.
func (db *DB) Update(ctx context.Context, inv *model.Invoice) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE invoices
		 SET customer_id = ?, amount = ?, status = ?
		 WHERE id = ?`,
		inv.CustomerID, inv.Amount, inv.Status, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating invoice %s: %w", inv.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("invoice", inv.ID)
	}
	return nil
}

// Delete removes an invoice. Zero rows affected is reported as NotFound;
// the action layer decides whether that counts as a failure.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM invoices WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting invoice %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("invoice", id)
	}
	return nil
}

// ListFiltered returns one page of invoices joined with their customers,
// newest first. The search term matches customer name, customer email,
// amount, status and date — the same columns the table displays.
func (db *DB) ListFiltered(ctx context.Context, opts repository.ListOptions) ([]model.InvoiceRow, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = repository.ItemsPerPage
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	pattern := "%" + opts.Query + "%"

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+invoiceRowColumns+`
		 FROM invoices
		 JOIN customers ON invoices.customer_id = customers.id
		 WHERE customers.name LIKE ?
		    OR customers.email LIKE ?
		    OR CAST(invoices.amount AS TEXT) LIKE ?
		    OR invoices.date LIKE ?
		    OR invoices.status LIKE ?
		 ORDER BY invoices.date DESC, invoices.id DESC
		 LIMIT ? OFFSET ?`,
		pattern, pattern, pattern, pattern, pattern, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing invoices: %w", err)
	}
	defer rows.Close()

	return scanInvoiceRows(rows, limit)
}

// CountFiltered returns how many invoices match the search term, so the
// listing page can compute its page count.
func (db *DB) CountFiltered(ctx context.Context, query string) (int, error) {
	pattern := "%" + query + "%"

	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM invoices
		 JOIN customers ON invoices.customer_id = customers.id
		 WHERE customers.name LIKE ?
		    OR customers.email LIKE ?
		    OR CAST(invoices.amount AS TEXT) LIKE ?
		    OR invoices.date LIKE ?
		    OR invoices.status LIKE ?`,
		pattern, pattern, pattern, pattern, pattern,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting invoices: %w", err)
	}
	return count, nil
}

// Latest returns the most recent invoices for the dashboard overview.
func (db *DB) Latest(ctx context.Context, limit int) ([]model.InvoiceRow, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+invoiceRowColumns+`
		 FROM invoices
		 JOIN customers ON invoices.customer_id = customers.id
		 ORDER BY invoices.date DESC, invoices.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing latest invoices: %w", err)
	}
	defer rows.Close()

	return scanInvoiceRows(rows, limit)
}

// Totals sums paid and pending amounts (in cents) and counts all invoices,
// in one pass, for the overview cards.
func (db *DB) Totals(ctx context.Context) (paid, pending int64, count int, err error) {
	err = db.conn.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0),
			COUNT(*)
		 FROM invoices`,
	).Scan(&paid, &pending, &count)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("sqlite: summing invoices: %w", err)
	}
	return paid, pending, count, nil
}

func scanInvoiceRows(rows *sql.Rows, capacityHint int) ([]model.InvoiceRow, error) {
	invoices := make([]model.InvoiceRow, 0, capacityHint)
	for rows.Next() {
		var row model.InvoiceRow
		if err := rows.Scan(
			&row.ID, &row.CustomerID, &row.Amount, &row.Status, &row.Date,
			&row.CustomerName, &row.CustomerEmail, &row.CustomerImage,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning invoice row: %w", err)
		}
		invoices = append(invoices, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating invoices: %w", err)
	}
	return invoices, nil
}
