package action

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/fillemon10/filip-sjolander/internal/apperror"
	"github.com/fillemon10/filip-sjolander/internal/auth"
	"github.com/fillemon10/filip-sjolander/internal/model"
	"github.com/fillemon10/filip-sjolander/internal/validate"
)

// Sessions resolves the current session, or nil for an anonymous request.
type Sessions interface {
	Current(ctx context.Context) *auth.Session
}

// CreatePortfolioItem validates the form, resolves the signed-in user and
// inserts a new portfolio item owned by that user.
//
// The owner lookup runs after validation and before the insert: session →
// email (empty when there is no session) → user record → user id. An email
// that matches no user is an authentication-required precondition failure,
// not a database error — the item is never inserted.
func (h *Handlers) CreatePortfolioItem(ctx context.Context, form url.Values) Result {
	values, fieldErrs := validate.CreatePortfolioItem.Parse(form)
	if fieldErrs != nil {
		return Rendered(State{
			Errors:  fieldErrs,
			Message: "Missing Fields. Failed to Create Portfolio Item.",
		})
	}

	var email string
	if session := h.sessions.Current(ctx); session != nil {
		email = session.Email
	}

	opCtx, cancel := h.opContext(ctx)
	defer cancel()

	user, err := h.users.GetUserByEmail(opCtx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.logger.Warn("portfolio create without a resolvable user",
				slog.String("email", email),
			)
			return Rendered(State{Message: "Sign-in required. Failed to Create Portfolio Item."})
		}
		h.logger.Error("failed to resolve session user", slog.String("error", err.Error()))
		return Rendered(State{Message: "Database Error: Failed to Create Portfolio Item."})
	}

	item := &model.PortfolioItem{
		Title:    values.String("title"),
		ImageURL: values.String("image_url"),
		Body:     values.String("body"),
		Link:     values.String("link"),
		Status:   values.String("status"),
		Date:     h.now().Format("2006-01-02"),
		UserID:   user.ID,
	}

	if err := h.portfolio.CreatePortfolioItem(opCtx, item); err != nil {
		h.logger.Error("failed to create portfolio item", slog.String("error", err.Error()))
		return Rendered(State{Message: "Database Error: Failed to Create Portfolio Item."})
	}

	h.cache.Invalidate(PortfolioPath)
	return Redirect(PortfolioPath)
}

// UpdatePortfolioItem validates the form and replaces every mutable field.
// Owner and date are fixed at creation and not touched here.
func (h *Handlers) UpdatePortfolioItem(ctx context.Context, id string, form url.Values) Result {
	values, fieldErrs := validate.UpdatePortfolioItem.Parse(form)
	if fieldErrs != nil {
		return Rendered(State{
			Errors:  fieldErrs,
			Message: "Missing Fields. Failed to Update Portfolio Item.",
		})
	}

	item := &model.PortfolioItem{
		ID:       id,
		Title:    values.String("title"),
		ImageURL: values.String("image_url"),
		Body:     values.String("body"),
		Link:     values.String("link"),
		Status:   values.String("status"),
	}

	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	if err := h.portfolio.UpdatePortfolioItem(opCtx, item); err != nil {
		h.logger.Error("failed to update portfolio item",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return Rendered(State{Message: "Database Error: Failed to Update Portfolio Item."})
	}

	h.cache.Invalidate(PortfolioPath)
	return Redirect(PortfolioPath)
}

// DeletePortfolioItem removes a portfolio item; same contract as
// DeleteInvoice (message only, absent id counts as success).
func (h *Handlers) DeletePortfolioItem(ctx context.Context, id string) State {
	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	err := h.portfolio.DeletePortfolioItem(opCtx, id)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		h.logger.Error("failed to delete portfolio item",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return State{Message: "Database Error: Failed to Delete Portfolio Item."}
	}

	h.cache.Invalidate(PortfolioPath)
	return State{Message: "Deleted Portfolio Item."}
}
