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

// compile-time check that *DB implements repository.PortfolioRepository
var _ repository.PortfolioRepository = (*DB)(nil)

// CreatePortfolioItem inserts a new portfolio item. Date and UserID must
// already be set by the action layer (server date, session user).
func (db *DB) CreatePortfolioItem(ctx context.Context, item *model.PortfolioItem) error {
	item.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO portfolioitems (id, title, image_url, body, link, status, date, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.ImageURL, item.Body, item.Link,
		item.Status, item.Date, item.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating portfolio item: %w", err)
	}
	return nil
}

// GetPortfolioItemByID retrieves a single portfolio item.
func (db *DB) GetPortfolioItemByID(ctx context.Context, id string) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, image_url, body, link, status, date, user_id
		 FROM portfolioitems WHERE id = ?`,
		id,
	).Scan(&item.ID, &item.Title, &item.ImageURL, &item.Body, &item.Link,
		&item.Status, &item.Date, &item.UserID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("portfolio item", id)
		}
		return nil, fmt.Errorf("sqlite: getting portfolio item %s: %w", id, err)
	}
	return &item, nil
}

// UpdatePortfolioItem replaces every mutable field. date and user_id are
// fixed at creation and never part of the SET list.
func (db *DB) UpdatePortfolioItem(ctx context.Context, item *model.PortfolioItem) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE portfolioitems
		 SET title = ?, image_url = ?, body = ?, link = ?, status = ?
		 WHERE id = ?`,
		item.Title, item.ImageURL, item.Body, item.Link, item.Status, item.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating portfolio item %s: %w", item.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("portfolio item", item.ID)
	}
	return nil
}

// DeletePortfolioItem removes a portfolio item, reporting NotFound when the
// id did not match any row.
func (db *DB) DeletePortfolioItem(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM portfolioitems WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting portfolio item %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("portfolio item", id)
	}
	return nil
}

// ListPortfolioFiltered returns one page of portfolio items, newest first.
// The search term matches title, body and status.
func (db *DB) ListPortfolioFiltered(ctx context.Context, opts repository.ListOptions) ([]model.PortfolioItem, error) {
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
		`SELECT id, title, image_url, body, link, status, date, user_id
		 FROM portfolioitems
		 WHERE title LIKE ? OR body LIKE ? OR status LIKE ?
		 ORDER BY date DESC, id DESC
		 LIMIT ? OFFSET ?`,
		pattern, pattern, pattern, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing portfolio items: %w", err)
	}
	defer rows.Close()

	items := make([]model.PortfolioItem, 0, limit)
	for rows.Next() {
		var item model.PortfolioItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.ImageURL, &item.Body, &item.Link,
			&item.Status, &item.Date, &item.UserID,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning portfolio row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating portfolio items: %w", err)
	}
	return items, nil
}

// CountPortfolioFiltered returns how many portfolio items match the search term.
func (db *DB) CountPortfolioFiltered(ctx context.Context, query string) (int, error) {
	pattern := "%" + query + "%"

	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM portfolioitems
		 WHERE title LIKE ? OR body LIKE ? OR status LIKE ?`,
		pattern, pattern, pattern,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting portfolio items: %w", err)
	}
	return count, nil
}
