package response

import (
	"time"

	"rugquotes/internal/domain/entities"
)

type QuoteResponse struct {
	ID               string     `json:"id"`
	QuoteNumber      string     `json:"quote_number"`
	CustomerName     string     `json:"customer_name"`
	CustomerNumber   string     `json:"customer_number"`
	CustomerCompany  string     `json:"customer_company"`
	ProductName      *string    `json:"product_name"`
	SalesOrderNumber *string    `json:"sales_order_number"`
	CustomRugSKU     *string    `json:"custom_rug_sku"`
	Status           string     `json:"status"`
	CADFileURL       *string    `json:"cad_file_url"`
	ImageRenderURL   *string    `json:"image_render_url"`
	DocumentsURL     *string    `json:"documents_url"`
	CADRequested     bool       `json:"cad_requested"`
	CADApproved      bool       `json:"cad_approved"`
	CADApprovedAt    *time.Time `json:"cad_approved_at"`
	SwatchApproved   bool       `json:"swatch_approved"`
	SwatchApprovedAt *time.Time `json:"swatch_approved_at"`
	SwatchApprovedBy *string    `json:"swatch_approved_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:               q.ID,
		QuoteNumber:      q.QuoteNumber,
		CustomerName:     q.CustomerName,
		CustomerNumber:   q.CustomerNumber,
		CustomerCompany:  q.CustomerCompany,
		ProductName:      q.ProductName,
		SalesOrderNumber: q.SalesOrderNumber,
		CustomRugSKU:     q.CustomRugSKU,
		Status:           string(q.Status),
		CADFileURL:       q.CADFileURL,
		ImageRenderURL:   q.ImageRenderURL,
		DocumentsURL:     q.DocumentsURL,
		CADRequested:     q.CADRequested,
		CADApproved:      q.CADApproved,
		CADApprovedAt:    q.CADApprovedAt,
		SwatchApproved:   q.SwatchApproved,
		SwatchApprovedAt: q.SwatchApprovedAt,
		SwatchApprovedBy: q.SwatchApprovedBy,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

// PortalQuoteResponse is the customer-facing projection: no internal ids
// beyond the quote id, plus the progress-bar and approval-alert fields the
// iframe renders.
type PortalQuoteResponse struct {
	ID               string    `json:"id"`
	QuoteNumber      string    `json:"quote_number"`
	CustomerName     string    `json:"customer_name"`
	CustomerCompany  string    `json:"customer_company"`
	ProductName      *string   `json:"product_name"`
	Status           string    `json:"status"`
	Progress         int       `json:"progress"`
	AwaitingApproval bool      `json:"awaiting_approval"`
	CADFileURL       *string   `json:"cad_file_url"`
	ImageRenderURL   *string   `json:"image_render_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromQuoteForPortal(q entities.Quote) PortalQuoteResponse {
	return PortalQuoteResponse{
		ID:               q.ID,
		QuoteNumber:      q.QuoteNumber,
		CustomerName:     q.CustomerName,
		CustomerCompany:  q.CustomerCompany,
		ProductName:      q.ProductName,
		Status:           string(q.Status),
		Progress:         q.Status.Progress(),
		AwaitingApproval: q.Status.AwaitingApproval(),
		CADFileURL:       q.CADFileURL,
		ImageRenderURL:   q.ImageRenderURL,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func FromQuotesForPortal(quotes []entities.Quote) []PortalQuoteResponse {
	out := make([]PortalQuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuoteForPortal(q))
	}
	return out
}
