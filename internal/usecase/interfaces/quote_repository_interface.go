package interfaces

import (
	"context"
	"time"

	"rugquotes/internal/domain/entities"
)

// QuoteListFilter narrows a quote listing. Zero values mean "no filter".
type QuoteListFilter struct {
	Status         *entities.QuoteStatus
	CustomerNumber string
	Search         string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Store-side responsibilities live behind this interface, mirroring the
// managed backend's triggers:
//   - Create allocates the sequential quote number.
//   - Update stamps/clears the approval timestamps when an approval flag
//     transitions, and advances status to the matching Approved stage.
//
// Lookups return a zero-value Quote (ID == "") when nothing matches; the use
// case layer translates that into its not-found error.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter QuoteListFilter) ([]entities.Quote, error)
	Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error)
	Delete(ctx context.Context, id string) error
}
