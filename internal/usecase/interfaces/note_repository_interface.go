package interfaces

import (
	"context"

	"rugquotes/internal/domain/entities"
)

// IQuoteNoteRepository abstracts DynamoDB persistence for QuoteNote.
// Notes are append-only: there is no update or delete.

type IQuoteNoteRepository interface {
	BatchCreate(ctx context.Context, notes []entities.QuoteNote) error
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteNote, error)
}
