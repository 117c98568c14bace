package action

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPortfolioForm() url.Values {
	return url.Values{
		"title":     {"Dashboard rewrite"},
		"image_url": {"/portfolio/dashboard.png"},
		"body":      {"Rebuilt the admin dashboard from scratch."},
		"link":      {"https://example.com/dashboard"},
		"status":    {"active"},
	}
}

func TestCreatePortfolioItem(t *testing.T) {
	t.Run("success assigns owner and server date, then redirects", func(t *testing.T) {
		f := newFixture(t)

		res := f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())

		requireRedirect(t, res, PortfolioPath)
		require.Len(t, f.portfolio.items, 1)
		item := f.portfolio.items["item-1"]
		require.NotNil(t, item)
		assert.Equal(t, "user-1", item.UserID)
		assert.Equal(t, "2026-09-01", item.Date)
		assert.Equal(t, "Dashboard rewrite", item.Title)
		assert.Equal(t, []string{PortfolioPath}, f.cache.invalidated)
	})

	t.Run("missing fields collect every error and skip the insert", func(t *testing.T) {
		f := newFixture(t)

		res := f.handlers.CreatePortfolioItem(context.Background(), url.Values{})

		state := requireRendered(t, res)
		assert.Equal(t, "Missing Fields. Failed to Create Portfolio Item.", state.Message)
		assert.Equal(t, []string{"Please enter a title."}, state.Errors["title"])
		assert.Equal(t, []string{"Please enter an image URL."}, state.Errors["image_url"])
		assert.Equal(t, []string{"Please enter a body."}, state.Errors["body"])
		assert.Equal(t, []string{"Please enter a link."}, state.Errors["link"])
		assert.Equal(t, []string{"Please select a status."}, state.Errors["status"])
		assert.Zero(t, f.portfolio.createCalls)
	})

	t.Run("anonymous request is rejected without inserting", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.session = nil

		res := f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Sign-in required. Failed to Create Portfolio Item.", state.Message)
		assert.Zero(t, f.portfolio.createCalls)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("session email with no user record is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.session.Email = "ghost@example.com"

		res := f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Sign-in required. Failed to Create Portfolio Item.", state.Message)
		assert.Zero(t, f.portfolio.createCalls)
	})

	t.Run("user lookup failure reports a database error", func(t *testing.T) {
		f := newFixture(t)
		f.users.err = errors.New("connection reset")

		res := f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Database Error: Failed to Create Portfolio Item.", state.Message)
		assert.Zero(t, f.portfolio.createCalls)
	})

	t.Run("insert failure reports a database error", func(t *testing.T) {
		f := newFixture(t)
		f.portfolio.failWith = errors.New("disk full")

		res := f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Database Error: Failed to Create Portfolio Item.", state.Message)
		assert.Empty(t, f.cache.invalidated)
	})
}

func TestUpdatePortfolioItem(t *testing.T) {
	seed := func(t *testing.T) (*fixture, string) {
		t.Helper()
		f := newFixture(t)
		res := f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())
		requireRedirect(t, res, PortfolioPath)
		f.cache.invalidated = nil
		return f, "item-1"
	}

	t.Run("replaces content fields but not owner or date", func(t *testing.T) {
		f, id := seed(t)
		form := validPortfolioForm()
		form.Set("title", "Dashboard rewrite, part two")
		form.Set("status", "inactive")

		res := f.handlers.UpdatePortfolioItem(context.Background(), id, form)

		requireRedirect(t, res, PortfolioPath)
		item := f.portfolio.items[id]
		assert.Equal(t, "Dashboard rewrite, part two", item.Title)
		assert.Equal(t, "inactive", item.Status)
		assert.Equal(t, "user-1", item.UserID)
		assert.Equal(t, "2026-09-01", item.Date)
		assert.Equal(t, []string{PortfolioPath}, f.cache.invalidated)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f, id := seed(t)
		form := validPortfolioForm()
		form.Set("status", "archived")

		res := f.handlers.UpdatePortfolioItem(context.Background(), id, form)

		state := requireRendered(t, res)
		assert.Equal(t, "Missing Fields. Failed to Update Portfolio Item.", state.Message)
		assert.Equal(t, []string{"Please select a status."}, state.Errors["status"])
		assert.Zero(t, f.portfolio.updateCalls)
	})

	t.Run("database failure reports a message", func(t *testing.T) {
		f, id := seed(t)
		f.portfolio.failWith = errors.New("locked")

		res := f.handlers.UpdatePortfolioItem(context.Background(), id, validPortfolioForm())

		state := requireRendered(t, res)
		assert.Equal(t, "Database Error: Failed to Update Portfolio Item.", state.Message)
		assert.Empty(t, f.cache.invalidated)
	})
}

func TestDeletePortfolioItem(t *testing.T) {
	t.Run("removes the item and invalidates the listing", func(t *testing.T) {
		f := newFixture(t)
		f.handlers.CreatePortfolioItem(context.Background(), validPortfolioForm())
		f.cache.invalidated = nil

		state := f.handlers.DeletePortfolioItem(context.Background(), "item-1")

		assert.Equal(t, "Deleted Portfolio Item.", state.Message)
		assert.Empty(t, f.portfolio.items)
		assert.Equal(t, []string{PortfolioPath}, f.cache.invalidated)
	})

	t.Run("deleting an absent id still reports success", func(t *testing.T) {
		f := newFixture(t)

		state := f.handlers.DeletePortfolioItem(context.Background(), "no-such-id")

		assert.Equal(t, "Deleted Portfolio Item.", state.Message)
	})
}
