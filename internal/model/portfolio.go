package model

// Portfolio item statuses. Active items are shown on the public site,
// inactive ones are hidden but kept around.
const (
	PortfolioStatusActive   = "active"
	PortfolioStatusInactive = "inactive"
)

// PortfolioItem represents one entry in the portfolio: a titled card with an
// image, a body text and an outbound link.
//
// UserID references the authenticated user who created the item. It is set
// once at creation from the current session and never updated afterwards.
// Date is server-assigned at creation, "YYYY-MM-DD".
type PortfolioItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Body     string `json:"body"`
	Link     string `json:"link"`
	Status   string `json:"status"` // "active" | "inactive"
	Date     string `json:"date"`   // "YYYY-MM-DD"
	UserID   string `json:"user_id"`
}
