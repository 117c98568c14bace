package handler

import (
	"log/slog"
	"net/http"

	"github.com/fillemon10/filip-sjolander/internal/repository"
)

// DashboardHandler serves the overview page: revenue cards and the most
// recent invoices.
type DashboardHandler struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	renderer  *Renderer
	logger    *slog.Logger
}

func NewDashboardHandler(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	renderer *Renderer,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		invoices:  invoices,
		customers: customers,
		renderer:  renderer,
		logger:    logger,
	}
}

// latestInvoiceCount is how many recent invoices the overview shows.
const latestInvoiceCount = 5

// HandleDashboard serves the overview page.
//
// HTTP: GET /dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paid, pending, invoiceCount, err := h.invoices.Totals(ctx)
	if err != nil {
		h.logger.Error("failed to load invoice totals", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	customerCount, err := h.customers.CountCustomers(ctx)
	if err != nil {
		h.logger.Error("failed to count customers", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	latest, err := h.invoices.Latest(ctx, latestInvoiceCount)
	if err != nil {
		h.logger.Error("failed to load latest invoices", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "dashboard", map[string]any{
		"Title":          "Dashboard",
		"TotalPaid":      paid,
		"TotalPending":   pending,
		"InvoiceCount":   invoiceCount,
		"CustomerCount":  customerCount,
		"LatestInvoices": latest,
	})
}
