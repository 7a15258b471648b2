package entities

import "time"

// ActionType classifies an activity-log entry.

type ActionType string

const (
	ActionQuoteCreated   ActionType = "quote_created"
	ActionQuoteUpdated   ActionType = "quote_updated"
	ActionQuoteDeleted   ActionType = "quote_deleted"
	ActionStatusChanged  ActionType = "status_changed"
	ActionCADApproved    ActionType = "cad_approved"
	ActionSwatchApproved ActionType = "swatch_approved"
)

// ActionTypes lists every recognized action type.
var ActionTypes = []ActionType{
	ActionQuoteCreated,
	ActionQuoteUpdated,
	ActionQuoteDeleted,
	ActionStatusChanged,
	ActionCADApproved,
	ActionSwatchApproved,
}

func (a ActionType) Valid() bool {
	for _, v := range ActionTypes {
		if v == a {
			return true
		}
	}
	return false
}

// ActivityLog is an append-only audit record of a domain event.
//
// A log entry must outlive its quote: QuoteID is nil once the quote is
// deleted, and QuoteNumber is a snapshot taken at write time. No code path
// mutates a log row after insert.
//
// Storage model (DynamoDB):
//   - PK: id

type ActivityLog struct {
	ID          string     `json:"id"`
	ActionType  ActionType `json:"action_type"`
	QuoteID     *string    `json:"quote_id,omitempty"`
	QuoteNumber string     `json:"quote_number"`
	PerformedBy string     `json:"performed_by"`
	Details     string     `json:"details,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
