package sqlite

import (
	"context"
	"testing"

	"github.com/fillemon10/filip-sjolander/internal/model"
)

// newTestDB opens a fresh in-memory database for one test. Fast, isolated,
// destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestCustomer(t *testing.T, db *DB, name, email string) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: name, Email: email, ImageURL: "/customers/" + name + ".png"}
	if err := db.InsertCustomer(context.Background(), c); err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return c
}

func createTestUser(t *testing.T, db *DB, name, email string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, PasswordHash: "$2a$04$test"}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func createTestInvoice(t *testing.T, db *DB, customerID string, amount int64, status, date string) *model.Invoice {
	t.Helper()
	inv := &model.Invoice{CustomerID: customerID, Amount: amount, Status: status, Date: date}
	if err := db.Create(context.Background(), inv); err != nil {
		t.Fatalf("failed to create test invoice: %v", err)
	}
	return inv
}

func createTestItem(t *testing.T, db *DB, userID, title, status, date string) *model.PortfolioItem {
	t.Helper()
	item := &model.PortfolioItem{
		Title:    title,
		ImageURL: "https://example.com/img.png",
		Body:     "body of " + title,
		Link:     "https://example.com",
		Status:   status,
		Date:     date,
		UserID:   userID,
	}
	if err := db.CreatePortfolioItem(context.Background(), item); err != nil {
		t.Fatalf("failed to create test portfolio item: %v", err)
	}
	return item
}
