package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fillemon10/filip-sjolander/internal/action"
	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// PortfolioHandler serves the portfolio listing and create/edit forms.
// Same shape as InvoiceHandler, minus the customer lookup.
type PortfolioHandler struct {
	actions  *action.Handlers
	items    repository.PortfolioRepository
	renderer *Renderer
	logger   *slog.Logger
}

func NewPortfolioHandler(
	actions *action.Handlers,
	items repository.PortfolioRepository,
	renderer *Renderer,
	logger *slog.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		actions:  actions,
		items:    items,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleList serves the searchable, paginated portfolio table.
//
// HTTP: GET /dashboard/portfolio?query=...&page=N
func (h *PortfolioHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("query")
	page := pageParam(r)

	total, err := h.items.CountPortfolioFiltered(ctx, query)
	if err != nil {
		h.logger.Error("failed to count portfolio items", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	totalPages := pageCount(total)
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	items, err := h.items.ListPortfolioFiltered(ctx, repository.ListOptions{
		Query:  query,
		Limit:  repository.ItemsPerPage,
		Offset: (page - 1) * repository.ItemsPerPage,
	})
	if err != nil {
		h.logger.Error("failed to list portfolio items", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "portfolio", map[string]any{
		"Title":      "Portfolio",
		"Items":      items,
		"Query":      query,
		"Page":       page,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
	})
}

// HandleNewForm serves the blank create form.
//
// HTTP: GET /dashboard/portfolio/create
func (h *PortfolioHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "portfolio_form", map[string]any{
		"Title":  "Create Portfolio Item",
		"Action": action.PortfolioPath + "/create",
	})
}

// HandleCreate processes the create form.
//
// HTTP: POST /dashboard/portfolio/create
func (h *PortfolioHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res := h.actions.CreatePortfolioItem(r.Context(), r.PostForm)
	if path, ok := res.RedirectPath(); ok {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	state := res.State()
	h.renderer.Render(w, http.StatusUnprocessableEntity, "portfolio_form", map[string]any{
		"Title":   "Create Portfolio Item",
		"Action":  action.PortfolioPath + "/create",
		"Errors":  state.Errors,
		"Message": state.Message,
		"Values":  r.PostForm,
	})
}

// HandleEditForm serves the edit form pre-filled with the stored item.
// A missing item renders the 404 page.
//
// HTTP: GET /dashboard/portfolio/{id}/edit
func (h *PortfolioHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.items.GetPortfolioItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.renderer.NotFound(w)
			return
		}
		h.logger.Error("failed to load portfolio item",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "portfolio_form", map[string]any{
		"Title":  "Edit Portfolio Item",
		"Action": action.PortfolioPath + "/" + id + "/edit",
		"Item":   item,
	})
}

// HandleUpdate processes the edit form.
//
// HTTP: POST /dashboard/portfolio/{id}/edit
func (h *PortfolioHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res := h.actions.UpdatePortfolioItem(r.Context(), id, r.PostForm)
	if path, ok := res.RedirectPath(); ok {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	state := res.State()
	h.renderer.Render(w, http.StatusUnprocessableEntity, "portfolio_form", map[string]any{
		"Title":   "Edit Portfolio Item",
		"Action":  action.PortfolioPath + "/" + id + "/edit",
		"Errors":  state.Errors,
		"Message": state.Message,
		"Values":  r.PostForm,
	})
}

// HandleDelete removes a portfolio item and returns to the listing.
//
// HTTP: POST /dashboard/portfolio/{id}/delete
func (h *PortfolioHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.actions.DeletePortfolioItem(r.Context(), id)
	http.Redirect(w, r, action.PortfolioPath, http.StatusSeeOther)
}
