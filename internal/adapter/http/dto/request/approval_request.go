package request

import "strings"

// ApprovalRequest is the portal payload committing a CAD or swatch approval.
//
// The consent booleans are the server-side record of the two-step confirm
// flow: the design acknowledgment applies to both paths, the deposit consent
// only to swatches. The eligibility check in the use case does not trust
// these flags; they gate the portal endpoint only.
type ApprovalRequest struct {
	Type               string `json:"type" binding:"required"`
	ApprovedBy         string `json:"approved_by"`
	DesignAcknowledged bool   `json:"design_acknowledged"`
	DepositAccepted    bool   `json:"deposit_accepted"`
}

// ConsentComplete reports whether every consent the approval type requires
// has been checked. Type matching mirrors the parser's normalization, so a
// payload cannot reach the swatch path under a spelling this check misses.
func (r ApprovalRequest) ConsentComplete() bool {
	if !r.DesignAcknowledged {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(r.Type), "swatch") && !r.DepositAccepted {
		return false
	}
	return true
}

// NoteRequest is the staff-annotation payload.
type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}
