// Package model defines the data structures used throughout the application.
// These are plain structs — no behaviour, no SQL, no HTTP. Every other layer
// (repository, action, handler) passes them around.
package model

// Invoice statuses. An invoice is either awaiting payment or settled.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice represents a billed amount owed by a customer.
//
// Amount is stored in integer cents to avoid floating-point currency bugs:
// $10.50 is stored as 1050. Conversion from the form's decimal input happens
// in the action layer, once, at the validation boundary.
//
// Date is a calendar date with day precision, stored as "YYYY-MM-DD" text.
// It is assigned by the server at creation time and never updated.
type Invoice struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"` // integer cents
	Status     string `json:"status"` // "pending" | "paid"
	Date       string `json:"date"`   // "YYYY-MM-DD"
}

// InvoiceRow is an invoice joined with its customer, as shown on the
// listing and dashboard tables. Read-only projection — never written back.
type InvoiceRow struct {
	Invoice
	CustomerName  string `json:"name"`
	CustomerEmail string `json:"email"`
	CustomerImage string `json:"image_url"`
}
