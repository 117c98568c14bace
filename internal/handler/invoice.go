package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fillemon10/filip-sjolander/internal/action"
	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// InvoiceHandler serves the invoice listing and the create/edit forms,
// and forwards mutations to the action layer.
type InvoiceHandler struct {
	actions   *action.Handlers
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	renderer  *Renderer
	logger    *slog.Logger
}

func NewInvoiceHandler(
	actions *action.Handlers,
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	renderer *Renderer,
	logger *slog.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		actions:   actions,
		invoices:  invoices,
		customers: customers,
		renderer:  renderer,
		logger:    logger,
	}
}

// HandleList serves the searchable, paginated invoice table.
//
// HTTP: GET /dashboard/invoices?query=...&page=N
func (h *InvoiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("query")
	page := pageParam(r)

	total, err := h.invoices.CountFiltered(ctx, query)
	if err != nil {
		h.logger.Error("failed to count invoices", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	totalPages := pageCount(total)
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	rows, err := h.invoices.ListFiltered(ctx, repository.ListOptions{
		Query:  query,
		Limit:  repository.ItemsPerPage,
		Offset: (page - 1) * repository.ItemsPerPage,
	})
	if err != nil {
		h.logger.Error("failed to list invoices", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "invoices", map[string]any{
		"Title":      "Invoices",
		"Invoices":   rows,
		"Query":      query,
		"Page":       page,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
	})
}

// HandleNewForm serves the blank create-invoice form.
//
// HTTP: GET /dashboard/invoices/create
func (h *InvoiceHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{
		Title:  "Create Invoice",
		Action: action.InvoicesPath + "/create",
	})
}

// HandleCreate processes the create-invoice form.
//
// HTTP: POST /dashboard/invoices/create
func (h *InvoiceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res := h.actions.CreateInvoice(r.Context(), r.PostForm)
	if path, ok := res.RedirectPath(); ok {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	state := res.State()
	h.renderForm(w, r, formData{
		Title:   "Create Invoice",
		Action:  action.InvoicesPath + "/create",
		State:   state,
		Values:  r.PostForm,
		Refused: true,
	})
}

// HandleEditForm serves the edit form pre-filled with the stored invoice.
// A missing invoice renders the 404 page.
//
// HTTP: GET /dashboard/invoices/{id}/edit
func (h *InvoiceHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inv, err := h.invoices.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.renderer.NotFound(w)
			return
		}
		h.logger.Error("failed to load invoice",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderForm(w, r, formData{
		Title:   "Edit Invoice",
		Action:  action.InvoicesPath + "/" + id + "/edit",
		Invoice: inv,
	})
}

// HandleUpdate processes the edit-invoice form.
//
// HTTP: POST /dashboard/invoices/{id}/edit
func (h *InvoiceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res := h.actions.UpdateInvoice(r.Context(), id, r.PostForm)
	if path, ok := res.RedirectPath(); ok {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	state := res.State()
	h.renderForm(w, r, formData{
		Title:   "Edit Invoice",
		Action:  action.InvoicesPath + "/" + id + "/edit",
		State:   state,
		Values:  r.PostForm,
		Refused: true,
	})
}

// HandleDelete removes an invoice and returns to the listing.
//
// HTTP: POST /dashboard/invoices/{id}/delete
func (h *InvoiceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.actions.DeleteInvoice(r.Context(), id)
	http.Redirect(w, r, action.InvoicesPath, http.StatusSeeOther)
}

// formData feeds the invoice form template for both the blank and
// re-rendered (validation failed) cases.
type formData struct {
	Title   string
	Action  string
	Invoice any
	State   action.State
	Values  map[string][]string
	Refused bool
}

func (h *InvoiceHandler) renderForm(w http.ResponseWriter, r *http.Request, data formData) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("failed to list customers", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if data.Refused {
		status = http.StatusUnprocessableEntity
	}
	h.renderer.Render(w, status, "invoice_form", map[string]any{
		"Title":     data.Title,
		"Action":    data.Action,
		"Invoice":   data.Invoice,
		"Customers": customers,
		"Errors":    data.State.Errors,
		"Message":   data.State.Message,
		"Values":    data.Values,
	})
}

// pageParam reads ?page=N, defaulting to 1 and flooring at 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageCount is ceil(total / ItemsPerPage).
func pageCount(total int) int {
	return (total + repository.ItemsPerPage - 1) / repository.ItemsPerPage
}
