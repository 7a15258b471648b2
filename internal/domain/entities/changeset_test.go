package entities

import "testing"

func strPtr(s string) *string { return &s }

func statusPtr(s QuoteStatus) *QuoteStatus { return &s }

func TestApplyTransition(t *testing.T) {
	t.Run("regressing to CAD Approval Pending clears the CAD approval", func(t *testing.T) {
		prior := Quote{Status: StatusCADApproved, CADApproved: true}
		patch := QuotePatch{Status: statusPtr(StatusCADApprovalPending)}

		got := ApplyTransition(prior, patch, "Admin")
		if got.CADApproved == nil || *got.CADApproved {
			t.Fatalf("expected cad_approved forced to false, got %v", got.CADApproved)
		}
	})

	t.Run("regressing to Swatch Approval Pending clears the swatch approval", func(t *testing.T) {
		prior := Quote{Status: StatusSwatchApproved, SwatchApproved: true, SwatchApprovedBy: strPtr("Customer")}
		patch := QuotePatch{
			Status:           statusPtr(StatusSwatchApprovalPending),
			SwatchApprovedBy: strPtr("Mallory"),
		}

		got := ApplyTransition(prior, patch, "Admin")
		if got.SwatchApproved == nil || *got.SwatchApproved {
			t.Fatalf("expected swatch_approved forced to false, got %v", got.SwatchApproved)
		}
		if got.SwatchApprovedBy != nil {
			t.Fatalf("expected swatch_approved_by dropped alongside the reset, got %q", *got.SwatchApprovedBy)
		}
	})

	t.Run("reset is a no-op when the flag was never set", func(t *testing.T) {
		prior := Quote{Status: StatusCADCreated}
		patch := QuotePatch{Status: statusPtr(StatusCADApprovalPending)}

		got := ApplyTransition(prior, patch, "Admin")
		if got.CADApproved != nil {
			t.Fatalf("expected the redundant false flag dropped, got %v", *got.CADApproved)
		}
	})

	t.Run("swatch approval without an approver records the actor", func(t *testing.T) {
		approved := true
		prior := Quote{Status: StatusSwatchApprovalPending}
		patch := QuotePatch{SwatchApproved: &approved}

		got := ApplyTransition(prior, patch, "jane@example.com")
		if got.SwatchApprovedBy == nil || *got.SwatchApprovedBy != "jane@example.com" {
			t.Fatalf("expected the actor recorded as approver, got %v", got.SwatchApprovedBy)
		}
	})

	t.Run("an explicit approver is kept", func(t *testing.T) {
		approved := true
		prior := Quote{Status: StatusSwatchApprovalPending}
		patch := QuotePatch{SwatchApproved: &approved, SwatchApprovedBy: strPtr("Customer")}

		got := ApplyTransition(prior, patch, "jane@example.com")
		if got.SwatchApprovedBy == nil || *got.SwatchApprovedBy != "Customer" {
			t.Fatalf("expected the named approver kept, got %v", got.SwatchApprovedBy)
		}
	})

	t.Run("an approver without a true flag is dropped", func(t *testing.T) {
		prior := Quote{Status: StatusSwatchApprovalPending}
		patch := QuotePatch{SwatchApprovedBy: strPtr("Mallory")}

		got := ApplyTransition(prior, patch, "Admin")
		if got.SwatchApprovedBy != nil {
			t.Fatalf("expected the orphan approver dropped, got %q", *got.SwatchApprovedBy)
		}
	})

	t.Run("an approver rename while approved is kept", func(t *testing.T) {
		prior := Quote{Status: StatusSwatchApproved, SwatchApproved: true, SwatchApprovedBy: strPtr("Customer")}
		patch := QuotePatch{SwatchApprovedBy: strPtr("Dana")}

		got := ApplyTransition(prior, patch, "Admin")
		if got.SwatchApprovedBy == nil || *got.SwatchApprovedBy != "Dana" {
			t.Fatalf("expected the corrected approver kept, got %v", got.SwatchApprovedBy)
		}
	})

	t.Run("approval flags equal to the stored value are dropped", func(t *testing.T) {
		approved := true
		prior := Quote{CADApproved: true, SwatchApproved: true}
		patch := QuotePatch{CADApproved: &approved, SwatchApproved: &approved}

		got := ApplyTransition(prior, patch, "Admin")
		if got.CADApproved != nil || got.SwatchApproved != nil {
			t.Fatal("expected both no-op approval flags dropped")
		}
	})
}

func TestDiffEvents(t *testing.T) {
	prior := Quote{
		Status:       StatusCADCreated,
		CADFileURL:   strPtr("https://cdn.example.com/cad-v1.pdf"),
		DocumentsURL: nil,
	}

	t.Run("added versus updated", func(t *testing.T) {
		patch := QuotePatch{
			CADFileURL:   strPtr("https://cdn.example.com/cad-v2.pdf"),
			DocumentsURL: strPtr("https://cdn.example.com/docs.zip"),
		}

		events := DiffEvents(prior, patch, "Admin")
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Note != "CAD file updated" {
			t.Errorf("expected %q, got %q", "CAD file updated", events[0].Note)
		}
		if events[1].Note != "Documents added" {
			t.Errorf("expected %q, got %q", "Documents added", events[1].Note)
		}
		for _, ev := range events {
			if ev.Action != ActionQuoteUpdated {
				t.Errorf("expected action %q, got %q", ActionQuoteUpdated, ev.Action)
			}
		}
	})

	t.Run("unchanged and cleared urls produce nothing", func(t *testing.T) {
		patch := QuotePatch{
			CADFileURL:     strPtr("https://cdn.example.com/cad-v1.pdf"),
			ImageRenderURL: strPtr(""),
		}
		if events := DiffEvents(prior, patch, "Admin"); len(events) != 0 {
			t.Fatalf("expected no events, got %d", len(events))
		}
	})

	t.Run("status change notes old and new by actor", func(t *testing.T) {
		patch := QuotePatch{Status: statusPtr(StatusCADApprovalPending)}

		events := DiffEvents(prior, patch, "jane@example.com")
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		want := `Status changed from "CAD Created" to "CAD Approval Pending" by jane@example.com`
		if events[0].Note != want {
			t.Errorf("note mismatch:\n got %q\nwant %q", events[0].Note, want)
		}
		if events[0].Action != ActionStatusChanged {
			t.Errorf("expected action %q, got %q", ActionStatusChanged, events[0].Action)
		}
		if want := `Status changed from "CAD Created" to "CAD Approval Pending"`; events[0].Details != want {
			t.Errorf("details mismatch:\n got %q\nwant %q", events[0].Details, want)
		}
	})

	t.Run("same status produces no event", func(t *testing.T) {
		patch := QuotePatch{Status: statusPtr(StatusCADCreated)}
		if events := DiffEvents(prior, patch, "Admin"); len(events) != 0 {
			t.Fatalf("expected no events, got %d", len(events))
		}
	})

	t.Run("events keep the fixed field order", func(t *testing.T) {
		patch := QuotePatch{
			Status:         statusPtr(StatusCADApprovalPending),
			ImageRenderURL: strPtr("https://cdn.example.com/render.png"),
			DocumentsURL:   strPtr("https://cdn.example.com/docs.zip"),
			CADFileURL:     strPtr("https://cdn.example.com/cad-v2.pdf"),
		}

		events := DiffEvents(prior, patch, "Admin")
		if len(events) != 4 {
			t.Fatalf("expected 4 events, got %d", len(events))
		}
		wantOrder := []string{"CAD file updated", "Image added", "Documents added"}
		for i, want := range wantOrder {
			if events[i].Note != want {
				t.Errorf("event %d: expected %q, got %q", i, want, events[i].Note)
			}
		}
		if events[3].Action != ActionStatusChanged {
			t.Errorf("expected the status event last, got %q", events[3].Action)
		}
	})

	t.Run("empty patch produces no events", func(t *testing.T) {
		if events := DiffEvents(prior, QuotePatch{}, "Admin"); len(events) != 0 {
			t.Fatalf("expected no events, got %d", len(events))
		}
	})
}
