// Package handler contains the HTTP handlers for the dashboard pages.
//
// Handlers parse the request, delegate to the action layer (mutations) or
// the repositories (reads), and render HTML templates. They hold no
// business rules of their own.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"
)

// pages lists every page template. Each is parsed together with base.html
// so its {{define "content"}} block fills the base layout's placeholder.
var pages = []string{
	"login",
	"dashboard",
	"invoices",
	"invoice_form",
	"portfolio",
	"portfolio_form",
	"notfound",
}

// Renderer holds the parsed template set, one entry per page. Templates
// are parsed once at startup; ExecuteTemplate on a parsed set is cheap.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// NewRenderer parses every page template under templateDir.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatCurrency": formatCurrency,
		"formatDate":     formatDate,
		"firstError":     firstError,
		"formValue":      formValue,
		"centsToAmount":  centsToAmount,
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// Render executes the named page inside the base layout.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := r.templates[page]
	if !ok {
		r.logger.Error("unknown template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		// Headers are already sent, logging is all that is left.
		r.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w http.ResponseWriter) {
	r.Render(w, http.StatusNotFound, "notfound", map[string]any{
		"Title": "404 Not Found",
	})
}

// formatCurrency renders integer cents as a dollar amount, e.g. 25050 →
// "$250.50". Negative amounts never occur but render sensibly anyway.
func formatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// formatDate renders a stored yyyy-mm-dd date in a human form, e.g.
// "2026-09-01" → "Sep 1, 2026". Unparseable values pass through unchanged.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// firstError returns the first message for a field, or "" when the field
// validated. Templates use it to show one error line per input.
func firstError(errs map[string][]string, field string) string {
	if msgs, ok := errs[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// formValue returns a submitted form value so a refused form re-renders
// with what the user typed. Nil maps (fresh forms) yield "".
func formValue(values map[string][]string, field string) string {
	if vs, ok := values[field]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// centsToAmount renders stored cents as a plain decimal for the amount
// input, e.g. 25050 → "250.50".
func centsToAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
