package entities

import (
	"fmt"
	"strings"
)

// QuotePatch is a partial update to a quote. Nil fields are left untouched by
// the store; non-nil fields overwrite the stored value.
//
// QuoteNumber, the approval timestamps and the audit timestamps are absent on
// purpose: the store adapter owns them.

type QuotePatch struct {
	CustomerName     *string
	CustomerNumber   *string
	CustomerCompany  *string
	ProductName      *string
	SalesOrderNumber *string
	CustomRugSKU     *string

	Status *QuoteStatus

	CADFileURL     *string
	ImageRenderURL *string
	DocumentsURL   *string

	CADRequested     *bool
	CADApproved      *bool
	SwatchApproved   *bool
	SwatchApprovedBy *string
}

// Empty reports whether the patch touches nothing.
func (p QuotePatch) Empty() bool {
	return p == QuotePatch{}
}

// AuditEvent is one observable domain event derived from a quote update.
// Note is empty for events that only produce an activity-log entry.

type AuditEvent struct {
	Note    string
	Action  ActionType
	Details string
}

// ApplyTransition consolidates the status/approval rules into one place, per
// the rules the original backend scattered across its update handlers:
//
//   - Reset rule: regressing status to a waiting stage clears the matching
//     approval so a stale "approved" flag cannot survive. Clearing
//     swatch_approved always clears swatch_approved_by as well.
//   - Derived-actor rule: an edit that flips swatch_approved on without
//     naming an approver records the acting staff member.
//   - Approval flags patched to their current value are dropped, so the store
//     trigger that stamps *_approved_at only fires on a real transition.
//
// The returned patch is what must be committed; prior is the snapshot read
// before the write.
func ApplyTransition(prior Quote, patch QuotePatch, actor string) QuotePatch {
	if patch.Status != nil {
		switch *patch.Status {
		case StatusCADApprovalPending:
			patch.CADApproved = boolPtr(false)
		case StatusSwatchApprovalPending:
			patch.SwatchApproved = boolPtr(false)
		}
	}

	if patch.SwatchApproved != nil && *patch.SwatchApproved &&
		!prior.SwatchApproved && strPtrBlank(patch.SwatchApprovedBy) {
		patch.SwatchApprovedBy = &actor
	}

	// An approver identity is only writable while the flag ends up true.
	// This covers both a reset (the store also REMOVEs the attribute on a
	// false flag) and a patch naming an approver without flipping the flag,
	// which would otherwise persist swatch_approved=false with an approver.
	swatchApproved := prior.SwatchApproved
	if patch.SwatchApproved != nil {
		swatchApproved = *patch.SwatchApproved
	}
	if !swatchApproved {
		patch.SwatchApprovedBy = nil
	}

	if patch.CADApproved != nil && *patch.CADApproved == prior.CADApproved {
		patch.CADApproved = nil
	}
	if patch.SwatchApproved != nil && *patch.SwatchApproved == prior.SwatchApproved {
		patch.SwatchApproved = nil
	}

	return patch
}

// DiffEvents compares the pre-update snapshot with the patch and returns the
// audit events the update produces, in a fixed order. Each field is checked
// independently; a single update can yield zero to four events. "Added" fires
// only when the prior value was absent, otherwise a changed value yields
// "updated".
func DiffEvents(prior Quote, patch QuotePatch, actor string) []AuditEvent {
	var events []AuditEvent

	appendURLEvent := func(label string, old *string, proposed *string) {
		ev, ok := urlEvent(label, old, proposed)
		if ok {
			events = append(events, ev)
		}
	}

	appendURLEvent("CAD file", prior.CADFileURL, patch.CADFileURL)
	appendURLEvent("Image", prior.ImageRenderURL, patch.ImageRenderURL)
	appendURLEvent("Documents", prior.DocumentsURL, patch.DocumentsURL)

	if patch.Status != nil && prior.Status != "" && *patch.Status != prior.Status {
		events = append(events, AuditEvent{
			Note:    fmt.Sprintf("Status changed from %q to %q by %s", prior.Status, *patch.Status, actor),
			Action:  ActionStatusChanged,
			Details: fmt.Sprintf("Status changed from %q to %q", prior.Status, *patch.Status),
		})
	}

	return events
}

func urlEvent(label string, old *string, proposed *string) (AuditEvent, bool) {
	if proposed == nil {
		return AuditEvent{}, false
	}
	newVal := strings.TrimSpace(*proposed)
	oldVal := ""
	if old != nil {
		oldVal = strings.TrimSpace(*old)
	}

	switch {
	case newVal == "":
		// Clearing a URL is not an audited event.
		return AuditEvent{}, false
	case oldVal == "":
		text := label + " added"
		return AuditEvent{Note: text, Action: ActionQuoteUpdated, Details: text}, true
	case newVal != oldVal:
		text := label + " updated"
		return AuditEvent{Note: text, Action: ActionQuoteUpdated, Details: text}, true
	}
	return AuditEvent{}, false
}

func boolPtr(v bool) *bool { return &v }

func strPtrBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
