package request

import (
	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase"
)

// CreateQuoteRequest is the admin payload for creating a quote. The quote
// number is never accepted from clients.
type CreateQuoteRequest struct {
	CustomerName     string `json:"customer_name" binding:"required"`
	CustomerNumber   string `json:"customer_number" binding:"required"`
	CustomerCompany  string `json:"customer_company" binding:"required"`
	ProductName      string `json:"product_name"`
	SalesOrderNumber string `json:"sales_order_number"`
	CustomRugSKU     string `json:"custom_rug_sku"`
	Status           string `json:"status"`
	CADFileURL       string `json:"cad_file_url"`
	ImageRenderURL   string `json:"image_render_url"`
	DocumentsURL     string `json:"documents_url"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		CustomerName:     r.CustomerName,
		CustomerNumber:   r.CustomerNumber,
		CustomerCompany:  r.CustomerCompany,
		ProductName:      r.ProductName,
		SalesOrderNumber: r.SalesOrderNumber,
		CustomRugSKU:     r.CustomRugSKU,
		Status:           r.Status,
		CADFileURL:       r.CADFileURL,
		ImageRenderURL:   r.ImageRenderURL,
		DocumentsURL:     r.DocumentsURL,
	}
}

// UpdateQuoteRequest is the admin payload for a partial edit. Absent fields
// stay untouched; present fields overwrite, which is what the change-diff
// audit trail keys off.
type UpdateQuoteRequest struct {
	CustomerName     *string `json:"customer_name"`
	CustomerNumber   *string `json:"customer_number"`
	CustomerCompany  *string `json:"customer_company"`
	ProductName      *string `json:"product_name"`
	SalesOrderNumber *string `json:"sales_order_number"`
	CustomRugSKU     *string `json:"custom_rug_sku"`
	Status           *string `json:"status"`
	CADFileURL       *string `json:"cad_file_url"`
	ImageRenderURL   *string `json:"image_render_url"`
	DocumentsURL     *string `json:"documents_url"`
	CADRequested     *bool   `json:"cad_requested"`
	CADApproved      *bool   `json:"cad_approved"`
	SwatchApproved   *bool   `json:"swatch_approved"`
	SwatchApprovedBy *string `json:"swatch_approved_by"`
}

func (r UpdateQuoteRequest) ToPatch() entities.QuotePatch {
	patch := entities.QuotePatch{
		CustomerName:     r.CustomerName,
		CustomerNumber:   r.CustomerNumber,
		CustomerCompany:  r.CustomerCompany,
		ProductName:      r.ProductName,
		SalesOrderNumber: r.SalesOrderNumber,
		CustomRugSKU:     r.CustomRugSKU,
		CADFileURL:       r.CADFileURL,
		ImageRenderURL:   r.ImageRenderURL,
		DocumentsURL:     r.DocumentsURL,
		CADRequested:     r.CADRequested,
		CADApproved:      r.CADApproved,
		SwatchApproved:   r.SwatchApproved,
		SwatchApprovedBy: r.SwatchApprovedBy,
	}
	if r.Status != nil {
		s := entities.QuoteStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}
