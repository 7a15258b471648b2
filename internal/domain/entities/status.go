package entities

// QuoteStatus represents one stage of the custom-rug production lifecycle.
//
// Domain notes:
//   - The sequence is positional: the index of a status drives the customer
//     portal progress bar. Never reorder the list at runtime.
//   - "CAD Approval Pending" and "Swatch Approval Pending" are the two
//     waiting stages; the approval operation is only legal while a quote sits
//     in exactly one of them.

type QuoteStatus string

const (
	StatusInquiry               QuoteStatus = "Inquiry"
	StatusAccepted              QuoteStatus = "Accepted"
	StatusCADCreated            QuoteStatus = "CAD Created"
	StatusCADApprovalPending    QuoteStatus = "CAD Approval Pending"
	StatusCADApproved           QuoteStatus = "CAD Approved"
	StatusSwatchOrdered         QuoteStatus = "Swatch Ordered"
	StatusSwatchCreation        QuoteStatus = "Swatch Creation"
	StatusSwatchShipped         QuoteStatus = "Swatch Shipped"
	StatusSwatchApprovalPending QuoteStatus = "Swatch Approval Pending"
	StatusSwatchApproved        QuoteStatus = "Swatch Approved"
	StatusOrderCreated          QuoteStatus = "Order Created"
	StatusOnLoom                QuoteStatus = "On Loom"
	StatusFinishing             QuoteStatus = "Finishing"
	StatusInTransit             QuoteStatus = "In Transit"
	StatusComplete              QuoteStatus = "Complete"
)

// QuoteStatuses is the canonical ordered production sequence.
var QuoteStatuses = []QuoteStatus{
	StatusInquiry,
	StatusAccepted,
	StatusCADCreated,
	StatusCADApprovalPending,
	StatusCADApproved,
	StatusSwatchOrdered,
	StatusSwatchCreation,
	StatusSwatchShipped,
	StatusSwatchApprovalPending,
	StatusSwatchApproved,
	StatusOrderCreated,
	StatusOnLoom,
	StatusFinishing,
	StatusInTransit,
	StatusComplete,
}

// Valid reports whether s is a member of the production sequence.
func (s QuoteStatus) Valid() bool {
	return s.Index() >= 0
}

// Index returns the zero-based position of s in the sequence, or -1 when s is
// not a recognized status.
func (s QuoteStatus) Index() int {
	for i, v := range QuoteStatuses {
		if v == s {
			return i
		}
	}
	return -1
}

// Progress returns the completion percentage for the portal progress bar.
func (s QuoteStatus) Progress() int {
	idx := s.Index()
	if idx < 0 {
		return 0
	}
	return idx * 100 / (len(QuoteStatuses) - 1)
}

// AwaitingApproval reports whether s is one of the two customer-approval
// waiting stages.
func (s QuoteStatus) AwaitingApproval() bool {
	return s == StatusCADApprovalPending || s == StatusSwatchApprovalPending
}
