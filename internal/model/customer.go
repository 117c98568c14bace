package model

// Customer is the party an invoice is billed to. Customers are reference
// data in this dashboard — invoices point at them, the invoice form offers
// them in a dropdown, but there is no customer CRUD surface here.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}
