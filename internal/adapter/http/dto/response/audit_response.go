package response

import (
	"time"

	"rugquotes/internal/domain/entities"
)

type NoteResponse struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quote_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func FromNote(n entities.QuoteNote) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		QuoteID:   n.QuoteID,
		Content:   n.Content,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
	}
}

func FromNotes(notes []entities.QuoteNote) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, FromNote(n))
	}
	return out
}

type ActivityLogResponse struct {
	ID          string    `json:"id"`
	ActionType  string    `json:"action_type"`
	QuoteID     *string   `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	PerformedBy string    `json:"performed_by"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromActivityLog(l entities.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:          l.ID,
		ActionType:  string(l.ActionType),
		QuoteID:     l.QuoteID,
		QuoteNumber: l.QuoteNumber,
		PerformedBy: l.PerformedBy,
		Details:     l.Details,
		CreatedAt:   l.CreatedAt,
	}
}

func FromActivityLogs(logs []entities.ActivityLog) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, FromActivityLog(l))
	}
	return out
}

// ImportResponse reports a bulk import. Errors is omitted when every row
// committed.
type ImportResponse struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}
