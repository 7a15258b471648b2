package entities

import "time"

// Quote is a tracked custom-rug order request persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (customer_number-index): customer_number
//
// Quote numbers:
//   - QuoteNumber is a human-facing sequential identifier ("Q-1001")
//     allocated by the store on insert and never mutated afterwards.
//
// Approval invariants (maintained by the store adapter, mirroring the
// original backend's insert/update triggers):
//   - CADApprovedAt is non-nil iff CADApproved is true.
//   - SwatchApprovedAt is non-nil iff SwatchApproved is true.

type Quote struct {
	ID          string `json:"id"`
	QuoteNumber string `json:"quote_number"`

	CustomerName     string  `json:"customer_name"`
	CustomerNumber   string  `json:"customer_number"`
	CustomerCompany  string  `json:"customer_company"`
	ProductName      *string `json:"product_name,omitempty"`
	SalesOrderNumber *string `json:"sales_order_number,omitempty"`
	CustomRugSKU     *string `json:"custom_rug_sku,omitempty"`

	Status QuoteStatus `json:"status"`

	CADFileURL     *string `json:"cad_file_url,omitempty"`
	ImageRenderURL *string `json:"image_render_url,omitempty"`
	DocumentsURL   *string `json:"documents_url,omitempty"`

	CADRequested     bool       `json:"cad_requested"`
	CADApproved      bool       `json:"cad_approved"`
	CADApprovedAt    *time.Time `json:"cad_approved_at,omitempty"`
	SwatchApproved   bool       `json:"swatch_approved"`
	SwatchApprovedAt *time.Time `json:"swatch_approved_at,omitempty"`
	SwatchApprovedBy *string    `json:"swatch_approved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
