package action

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fillemon10/filip-sjolander/internal/model"
)

func validInvoiceForm() url.Values {
	return url.Values{
		"customerId": {"cust-1"},
		"amount":     {"250.50"},
		"status":     {"pending"},
	}
}

func TestCreateInvoice(t *testing.T) {
	t.Run("success inserts once, invalidates once and redirects", func(t *testing.T) {
		f := newFixture(t)

		res := f.handlers.CreateInvoice(context.Background(), validInvoiceForm())

		requireRedirect(t, res, InvoicesPath)
		assert.Equal(t, 1, f.invoices.createCalls)
		assert.Equal(t, []string{InvoicesPath}, f.cache.invalidated)
	})

	t.Run("stores amount in cents with server date", func(t *testing.T) {
		f := newFixture(t)

		res := f.handlers.CreateInvoice(context.Background(), validInvoiceForm())

		requireRedirect(t, res, InvoicesPath)
		require.Len(t, f.invoices.invoices, 1)
		inv := f.invoices.invoices["inv-1"]
		require.NotNil(t, inv)
		assert.Equal(t, int64(25050), inv.Amount)
		assert.Equal(t, "cust-1", inv.CustomerID)
		assert.Equal(t, model.InvoiceStatusPending, inv.Status)
		assert.Equal(t, "2026-09-01", inv.Date)
	})

	t.Run("smallest positive amount is accepted", func(t *testing.T) {
		f := newFixture(t)
		form := validInvoiceForm()
		form.Set("amount", "0.01")

		res := f.handlers.CreateInvoice(context.Background(), form)

		requireRedirect(t, res, InvoicesPath)
		assert.Equal(t, int64(1), f.invoices.invoices["inv-1"].Amount)
	})

	t.Run("missing fields collect errors and skip the repository", func(t *testing.T) {
		f := newFixture(t)
		form := url.Values{"amount": {"-5"}} // no customer, invalid amount

		res := f.handlers.CreateInvoice(context.Background(), form)

		state := requireRendered(t, res)
		assert.Equal(t, "Missing Fields. Failed to Create Invoice.", state.Message)
		assert.Equal(t, []string{"Please select a customer."}, state.Errors["customerId"])
		assert.Equal(t, []string{"Please enter an amount greater than $0."}, state.Errors["amount"])
		assert.Equal(t, []string{"Please select an invoice status."}, state.Errors["status"])
		assert.Zero(t, f.invoices.createCalls)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		f := newFixture(t)
		form := validInvoiceForm()
		form.Set("amount", "0")

		res := f.handlers.CreateInvoice(context.Background(), form)

		state := requireRendered(t, res)
		assert.Equal(t, []string{"Please enter an amount greater than $0."}, state.Errors["amount"])
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newFixture(t)
		form := validInvoiceForm()
		form.Set("status", "overdue")

		res := f.handlers.CreateInvoice(context.Background(), form)

		state := requireRendered(t, res)
		assert.Equal(t, []string{"Please select an invoice status."}, state.Errors["status"])
	})

	t.Run("database failure reports a message and leaves the cache alone", func(t *testing.T) {
		f := newFixture(t)
		f.invoices.failWith = errors.New("disk full")

		res := f.handlers.CreateInvoice(context.Background(), validInvoiceForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Database Error: Failed to Create Invoice.", state.Message)
		assert.Nil(t, state.Errors)
		assert.Empty(t, f.cache.invalidated)
	})
}

func TestUpdateInvoice(t *testing.T) {
	seed := func(t *testing.T) (*fixture, string) {
		t.Helper()
		f := newFixture(t)
		res := f.handlers.CreateInvoice(context.Background(), validInvoiceForm())
		requireRedirect(t, res, InvoicesPath)
		f.cache.invalidated = nil
		return f, "inv-1"
	}

	t.Run("replaces mutable fields and keeps the original date", func(t *testing.T) {
		f, id := seed(t)
		form := url.Values{
			"customerId": {"cust-2"},
			"amount":     {"10"},
			"status":     {"paid"},
		}

		res := f.handlers.UpdateInvoice(context.Background(), id, form)

		requireRedirect(t, res, InvoicesPath)
		inv := f.invoices.invoices[id]
		assert.Equal(t, "cust-2", inv.CustomerID)
		assert.Equal(t, int64(1000), inv.Amount)
		assert.Equal(t, model.InvoiceStatusPaid, inv.Status)
		assert.Equal(t, "2026-09-01", inv.Date)
		assert.Equal(t, []string{InvoicesPath}, f.cache.invalidated)
	})

	t.Run("validation failure skips the repository", func(t *testing.T) {
		f, id := seed(t)

		res := f.handlers.UpdateInvoice(context.Background(), id, url.Values{})

		state := requireRendered(t, res)
		assert.Equal(t, "Missing Fields. Failed to Update Invoice.", state.Message)
		assert.Zero(t, f.invoices.updateCalls)
	})

	t.Run("database failure reports a message", func(t *testing.T) {
		f, id := seed(t)
		f.invoices.failWith = errors.New("locked")

		res := f.handlers.UpdateInvoice(context.Background(), id, validInvoiceForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Database Error: Failed to Update Invoice.", state.Message)
		assert.Empty(t, f.cache.invalidated)
	})
}

func TestDeleteInvoice(t *testing.T) {
	t.Run("removes the invoice and invalidates the listing", func(t *testing.T) {
		f := newFixture(t)
		f.handlers.CreateInvoice(context.Background(), validInvoiceForm())
		f.cache.invalidated = nil

		state := f.handlers.DeleteInvoice(context.Background(), "inv-1")

		assert.Equal(t, "Deleted Invoice.", state.Message)
		assert.Empty(t, f.invoices.invoices)
		assert.Equal(t, []string{InvoicesPath}, f.cache.invalidated)
	})

	t.Run("deleting an absent id still reports success", func(t *testing.T) {
		f := newFixture(t)

		state := f.handlers.DeleteInvoice(context.Background(), "no-such-id")

		assert.Equal(t, "Deleted Invoice.", state.Message)
	})

	t.Run("database failure reports a message", func(t *testing.T) {
		f := newFixture(t)
		f.invoices.failWith = errors.New("io error")

		state := f.handlers.DeleteInvoice(context.Background(), "inv-1")

		assert.Equal(t, "Database Error: Failed to Delete Invoice.", state.Message)
		assert.Empty(t, f.cache.invalidated)
	})
}
