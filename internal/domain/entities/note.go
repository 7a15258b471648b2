package entities

import "time"

// QuoteNote is an append-only free-text annotation on a quote.
//
// Notes are written exactly once, either by explicit staff annotation or as a
// side effect of an edit/approval, and are never updated or deleted.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id

type QuoteNote struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quote_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
