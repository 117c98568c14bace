package validate

import "github.com/fillemon10/filip-sjolander/internal/model"

// The two entity shapes the dashboard accepts, one schema per shape.
// Field names match the HTML form inputs. The update shapes are identical
// to the create shapes: the id travels out of band (URL parameter) and the
// date is server-assigned at creation, so neither is ever a form field.
var (
	CreateInvoice = NewSchema(
		String("customerId", "Please select a customer."),
		Number("amount", 0, "Please enter an amount greater than $0."),
		Enum("status",
			[]string{model.InvoiceStatusPending, model.InvoiceStatusPaid},
			"Please select an invoice status."),
	)
	UpdateInvoice = CreateInvoice

	CreatePortfolioItem = NewSchema(
		String("title", "Please enter a title."),
		String("image_url", "Please enter an image URL."),
		String("body", "Please enter a body."),
		String("link", "Please enter a link."),
		Enum("status",
			[]string{model.PortfolioStatusActive, model.PortfolioStatusInactive},
			"Please select a status."),
	)
	UpdatePortfolioItem = CreatePortfolioItem
)
