package action

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/model"
	"github.com/fillemon10/filip-sjolander/internal/validate"
)

// CreateInvoice validates the submitted form and inserts a new invoice.
// The date is server-assigned at creation with day precision.
func (h *Handlers) CreateInvoice(ctx context.Context, form url.Values) Result {
	values, fieldErrs := validate.CreateInvoice.Parse(form)
	if fieldErrs != nil {
		return Rendered(State{
			Errors:  fieldErrs,
			Message: "Missing Fields. Failed to Create Invoice.",
		})
	}

	inv := &model.Invoice{
		CustomerID: values.String("customerId"),
		Amount:     toCents(values.Number("amount")),
		Status:     values.String("status"),
		Date:       h.now().Format("2006-01-02"),
	}

	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	if err := h.invoices.Create(opCtx, inv); err != nil {
		h.logger.Error("failed to create invoice", slog.String("error", err.Error()))
		return Rendered(State{Message: "Database Error: Failed to Create Invoice."})
	}

	h.cache.Invalidate(InvoicesPath)
	return Redirect(InvoicesPath)
}

// UpdateInvoice validates the form and replaces every mutable field of the
// invoice. The id arrives out of band (URL parameter, never a form field).
func (h *Handlers) UpdateInvoice(ctx context.Context, id string, form url.Values) Result {
	values, fieldErrs := validate.UpdateInvoice.Parse(form)
	if fieldErrs != nil {
		return Rendered(State{
			Errors:  fieldErrs,
			Message: "Missing Fields. Failed to Update Invoice.",
		})
	}

	inv := &model.Invoice{
		ID:         id,
		CustomerID: values.String("customerId"),
		Amount:     toCents(values.Number("amount")),
		Status:     values.String("status"),
	}

	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	if err := h.invoices.Update(opCtx, inv); err != nil {
		h.logger.Error("failed to update invoice",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return Rendered(State{Message: "Database Error: Failed to Update Invoice."})
	}

	h.cache.Invalidate(InvoicesPath)
	return Redirect(InvoicesPath)
}

// DeleteInvoice removes an invoice and reports a plain message — no
// redirect, since deletion is triggered from the listing page itself.
// Deleting an id that no longer exists counts as success: the end state
// the user asked for (row gone) already holds.
func (h *Handlers) DeleteInvoice(ctx context.Context, id string) State {
	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	err := h.invoices.Delete(opCtx, id)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		h.logger.Error("failed to delete invoice",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return State{Message: "Database Error: Failed to Delete Invoice."}
	}

	h.cache.Invalidate(InvoicesPath)
	return State{Message: "Deleted Invoice."}
}
