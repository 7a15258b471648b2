package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyImport = errors.New("import requires a non-empty array of quote rows")
	ErrNoValidRows = errors.New("no valid rows to import")
)

// ImportRow is one row of a bulk import, already parsed out of the CSV by the
// admin client.
type ImportRow struct {
	CustomerName     string `json:"customer_name"`
	CustomerNumber   string `json:"customer_number"`
	CustomerCompany  string `json:"customer_company"`
	ProductName      string `json:"product_name"`
	SalesOrderNumber string `json:"sales_order_number"`
	CustomRugSKU     string `json:"custom_rug_sku"`
	Status           string `json:"status"`
	CADFileURL       string `json:"cad_file_url"`
	ImageRenderURL   string `json:"image_render_url"`
	DocumentsURL     string `json:"documents_url"`
}

// ImportResult reports a bulk import outcome. Partial success is normal:
// valid rows commit independently, invalid ones are reported per row number.
type ImportResult struct {
	Imported int
	Errors   []string
}

// IImportUseCase exposes bulk import and the matching export listing.

type IImportUseCase interface {
	Import(ctx context.Context, rows []ImportRow, actor string) (ImportResult, error)
	Export(ctx context.Context) ([]entities.Quote, error)
}

type ImportUseCase struct {
	quotes interfaces.IQuoteRepository
	logs   interfaces.IActivityLogRepository
	log    *zap.Logger
}

var _ IImportUseCase = (*ImportUseCase)(nil)

func NewImportUseCase(quotes interfaces.IQuoteRepository, logs interfaces.IActivityLogRepository, log *zap.Logger) *ImportUseCase {
	return &ImportUseCase{quotes: quotes, logs: logs, log: log}
}

// Import validates and inserts rows one by one; there is no all-or-nothing
// transaction. Validation order per row: required fields first, then status
// enum membership. A row that fails is skipped with a row-numbered error and
// the remaining rows continue.
func (u *ImportUseCase) Import(ctx context.Context, rows []ImportRow, actor string) (ImportResult, error) {
	if len(rows) == 0 {
		return ImportResult{}, ErrEmptyImport
	}

	var result ImportResult
	now := time.Now().UTC()

	for i, row := range rows {
		rowNum := i + 1

		q, err := validateImportRow(row, rowNum)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		q.ID = uuid.NewString()
		q.CreatedAt = now
		q.UpdatedAt = now

		created, err := u.quotes.Create(ctx, q)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.Imported++

		quoteID := created.ID
		entry := entities.ActivityLog{
			ID:          uuid.NewString(),
			ActionType:  entities.ActionQuoteCreated,
			QuoteID:     &quoteID,
			QuoteNumber: created.QuoteNumber,
			PerformedBy: actor,
			Details:     fmt.Sprintf("Imported via CSV: %s (%s)", created.CustomerName, created.CustomerCompany),
			CreatedAt:   time.Now().UTC(),
		}
		if err := u.logs.BatchCreate(ctx, []entities.ActivityLog{entry}); err != nil {
			u.log.Warn("activity log write failed after import",
				zap.String("quote_number", created.QuoteNumber),
				zap.Error(err))
		}
	}

	if result.Imported == 0 {
		return result, ErrNoValidRows
	}
	return result, nil
}

func (u *ImportUseCase) Export(ctx context.Context) ([]entities.Quote, error) {
	return u.quotes.List(ctx, interfaces.QuoteListFilter{})
}

func validateImportRow(row ImportRow, rowNum int) (entities.Quote, error) {
	name := strings.TrimSpace(row.CustomerName)
	number := strings.TrimSpace(row.CustomerNumber)
	company := strings.TrimSpace(row.CustomerCompany)

	if name == "" {
		return entities.Quote{}, fmt.Errorf("Row %d: customer_name is required", rowNum)
	}
	if number == "" {
		return entities.Quote{}, fmt.Errorf("Row %d: customer_number is required", rowNum)
	}
	if company == "" {
		return entities.Quote{}, fmt.Errorf("Row %d: customer_company is required", rowNum)
	}

	status := entities.StatusInquiry
	if s := strings.TrimSpace(row.Status); s != "" {
		status = entities.QuoteStatus(s)
		if !status.Valid() {
			return entities.Quote{}, fmt.Errorf("Row %d: Invalid status %q. Valid values: %s",
				rowNum, row.Status, joinStatuses())
		}
	}

	return entities.Quote{
		CustomerName:     name,
		CustomerNumber:   number,
		CustomerCompany:  company,
		ProductName:      optionalString(row.ProductName),
		SalesOrderNumber: optionalString(row.SalesOrderNumber),
		CustomRugSKU:     optionalString(row.CustomRugSKU),
		Status:           status,
		CADFileURL:       optionalString(row.CADFileURL),
		ImageRenderURL:   optionalString(row.ImageRenderURL),
		DocumentsURL:     optionalString(row.DocumentsURL),
	}, nil
}

func joinStatuses() string {
	parts := make([]string, len(entities.QuoteStatuses))
	for i, s := range entities.QuoteStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
