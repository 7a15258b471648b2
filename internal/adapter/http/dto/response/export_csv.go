package response

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"rugquotes/internal/domain/entities"
)

// exportHeader matches the column names the bulk import accepts, so an
// exported file can be re-imported unchanged.
var exportHeader = []string{
	"quote_number",
	"customer_name",
	"customer_number",
	"customer_company",
	"product_name",
	"sales_order_number",
	"custom_rug_sku",
	"status",
	"cad_file_url",
	"image_render_url",
	"documents_url",
	"cad_approved",
	"swatch_approved",
	"swatch_approved_by",
	"created_at",
}

// WriteQuotesCSV streams the quote set as CSV.
func WriteQuotesCSV(w io.Writer, quotes []entities.Quote) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, q := range quotes {
		record := []string{
			q.QuoteNumber,
			q.CustomerName,
			q.CustomerNumber,
			q.CustomerCompany,
			deref(q.ProductName),
			deref(q.SalesOrderNumber),
			deref(q.CustomRugSKU),
			string(q.Status),
			deref(q.CADFileURL),
			deref(q.ImageRenderURL),
			deref(q.DocumentsURL),
			strconv.FormatBool(q.CADApproved),
			strconv.FormatBool(q.SwatchApproved),
			deref(q.SwatchApprovedBy),
			q.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
