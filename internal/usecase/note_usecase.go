package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrNoteContentRequired = errors.New("note content is required")

// INoteUseCase exposes staff annotations on a quote.

type INoteUseCase interface {
	ListByQuote(ctx context.Context, quoteID string) ([]entities.QuoteNote, error)
	Add(ctx context.Context, quoteID, content, actor string) (entities.QuoteNote, error)
}

type NoteUseCase struct {
	quotes interfaces.IQuoteRepository
	notes  interfaces.IQuoteNoteRepository
}

var _ INoteUseCase = (*NoteUseCase)(nil)

func NewNoteUseCase(quotes interfaces.IQuoteRepository, notes interfaces.IQuoteNoteRepository) *NoteUseCase {
	return &NoteUseCase{quotes: quotes, notes: notes}
}

func (u *NoteUseCase) ListByQuote(ctx context.Context, quoteID string) ([]entities.QuoteNote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	return u.notes.ListByQuoteID(ctx, quoteID)
}

// Add appends an explicit staff note. Unlike the audit side effects of an
// edit, this write is the primary operation, so a store failure is returned.
func (u *NoteUseCase) Add(ctx context.Context, quoteID, content, actor string) (entities.QuoteNote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.QuoteNote{}, ErrInvalidQuoteID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.QuoteNote{}, ErrNoteContentRequired
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.QuoteNote{}, err
	}
	if q.ID == "" {
		return entities.QuoteNote{}, ErrQuoteNotFound
	}

	note := entities.QuoteNote{
		ID:        uuid.NewString(),
		QuoteID:   quoteID,
		Content:   content,
		CreatedBy: actor,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.notes.BatchCreate(ctx, []entities.QuoteNote{note}); err != nil {
		return entities.QuoteNote{}, err
	}
	return note, nil
}
