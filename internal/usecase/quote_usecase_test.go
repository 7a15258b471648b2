package usecase

import (
	"context"
	"errors"
	"testing"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"
	mock_interfaces "rugquotes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newQuoteUseCase(ctrl *gomock.Controller) (*QuoteUseCase, *mock_interfaces.MockIQuoteRepository, *mock_interfaces.MockIQuoteNoteRepository, *mock_interfaces.MockIActivityLogRepository) {
	quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
	notes := mock_interfaces.NewMockIQuoteNoteRepository(ctrl)
	logs := mock_interfaces.NewMockIActivityLogRepository(ctrl)
	return NewQuoteUseCase(quotes, notes, logs, zap.NewNop()), quotes, notes, logs
}

func TestQuoteUseCase_Create(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		_, err := uc.Create(context.Background(), CreateQuoteInput{CustomerName: "Alice"}, "Admin")
		if !errors.Is(err, ErrMissingRequiredFields) {
			t.Fatalf("expected ErrMissingRequiredFields, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		in := CreateQuoteInput{
			CustomerName:    "Alice",
			CustomerNumber:  "C-100",
			CustomerCompany: "Acme Rugs",
			Status:          "Shipped",
		}
		_, err := uc.Create(context.Background(), in, "Admin")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, errors.New("db"))

		in := CreateQuoteInput{CustomerName: "Alice", CustomerNumber: "C-100", CustomerCompany: "Acme Rugs"}
		_, err := uc.Create(context.Background(), in, "Admin")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("success defaults to Inquiry and logs creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, logs := newQuoteUseCase(ctrl)

		quotes.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || q.CustomerName != "Alice" || q.Status != entities.StatusInquiry {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.CreatedAt.IsZero() || q.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				q.QuoteNumber = "Q-1001"
				return q, nil
			},
		)
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.ActivityLog) error {
				if len(entries) != 1 {
					t.Fatalf("expected 1 log entry, got %d", len(entries))
				}
				e := entries[0]
				if e.ActionType != entities.ActionQuoteCreated || e.QuoteNumber != "Q-1001" {
					t.Fatalf("unexpected entry: %+v", e)
				}
				if e.Details != "Created quote for Alice (Acme Rugs)" {
					t.Fatalf("unexpected details: %q", e.Details)
				}
				return nil
			},
		)

		in := CreateQuoteInput{CustomerName: " Alice ", CustomerNumber: "C-100", CustomerCompany: "Acme Rugs"}
		res, err := uc.Create(context.Background(), in, "Admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.QuoteNumber != "Q-1001" {
			t.Fatalf("expected allocated quote number, got %q", res.QuoteNumber)
		}
	})
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		_, err := uc.GetByID(context.Background(), "   ")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.GetByID(context.Background(), "q-1")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)

		res, err := uc.GetByID(context.Background(), " q-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "q-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestQuoteUseCase_List(t *testing.T) {
	t.Run("invalid status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		bad := entities.QuoteStatus("Shipped")
		_, err := uc.List(context.Background(), interfaces.QuoteListFilter{Status: &bad})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("passes the filter through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		filter := interfaces.QuoteListFilter{CustomerNumber: "C-100"}
		quotes.EXPECT().List(gomock.Any(), filter).Return([]entities.Quote{{ID: "q-1"}}, nil)

		res, err := uc.List(context.Background(), filter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 || res[0].ID != "q-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestQuoteUseCase_Update(t *testing.T) {
	prior := entities.Quote{
		ID:           "q-1",
		QuoteNumber:  "Q-1001",
		CustomerName: "Alice",
		Status:       entities.StatusCADCreated,
	}

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		_, err := uc.Update(context.Background(), "", entities.QuotePatch{}, "Admin")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		bad := entities.QuoteStatus("Shipped")
		_, err := uc.Update(context.Background(), "q-1", entities.QuotePatch{Status: &bad}, "Admin")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("blank required field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		blank := "  "
		_, err := uc.Update(context.Background(), "q-1", entities.QuotePatch{CustomerName: &blank}, "Admin")
		if !errors.Is(err, ErrMissingRequiredFields) {
			t.Fatalf("expected ErrMissingRequiredFields, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.Update(context.Background(), "q-1", entities.QuotePatch{}, "Admin")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("commits the transformed patch and audits the diff", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, notes, logs := newQuoteUseCase(ctrl)

		pending := entities.StatusCADApprovalPending
		url := "https://cdn.example.com/cad-v1.pdf"
		patch := entities.QuotePatch{Status: &pending, CADFileURL: &url}

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(prior, nil)
		quotes.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, final entities.QuotePatch) (entities.Quote, error) {
				if final.Status == nil || *final.Status != entities.StatusCADApprovalPending {
					t.Fatalf("expected the status carried through, got %+v", final.Status)
				}
				if final.CADApproved != nil {
					t.Fatalf("expected the redundant reset dropped, got %v", *final.CADApproved)
				}
				updated := prior
				updated.Status = *final.Status
				updated.CADFileURL = final.CADFileURL
				return updated, nil
			},
		)
		notes.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, got []entities.QuoteNote) error {
				if len(got) != 2 {
					t.Fatalf("expected 2 notes, got %d", len(got))
				}
				if got[0].Content != "CAD file added" {
					t.Fatalf("unexpected first note: %q", got[0].Content)
				}
				want := `Status changed from "CAD Created" to "CAD Approval Pending" by Admin`
				if got[1].Content != want {
					t.Fatalf("unexpected second note: %q", got[1].Content)
				}
				return nil
			},
		)
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.ActivityLog) error {
				if len(entries) != 2 {
					t.Fatalf("expected 2 log entries, got %d", len(entries))
				}
				if entries[0].ActionType != entities.ActionQuoteUpdated || entries[1].ActionType != entities.ActionStatusChanged {
					t.Fatalf("unexpected actions: %+v", entries)
				}
				if entries[1].QuoteID == nil || *entries[1].QuoteID != "q-1" {
					t.Fatalf("expected the quote id on the entry")
				}
				return nil
			},
		)

		res, err := uc.Update(context.Background(), "q-1", patch, "Admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusCADApprovalPending {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("audit write failures do not fail the update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, notes, logs := newQuoteUseCase(ctrl)

		pending := entities.StatusCADApprovalPending
		patch := entities.QuotePatch{Status: &pending}

		updated := prior
		updated.Status = pending

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(prior, nil)
		quotes.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).Return(updated, nil)
		notes.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).Return(errors.New("dynamo down"))
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).Return(errors.New("dynamo down"))

		res, err := uc.Update(context.Background(), "q-1", patch, "Admin")
		if err != nil {
			t.Fatalf("expected the committed update to survive, got %v", err)
		}
		if res.Status != entities.StatusCADApprovalPending {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("no-op update audits nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		name := "Alice"
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(prior, nil)
		quotes.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).Return(prior, nil)

		if _, err := uc.Update(context.Background(), "q-1", entities.QuotePatch{CustomerName: &name}, "Admin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_Delete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newQuoteUseCase(ctrl)

		if _, err := uc.Delete(context.Background(), "", "Admin"); !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		if _, err := uc.Delete(context.Background(), "q-1", "Admin"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("success logs the deletion without a quote id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, logs := newQuoteUseCase(ctrl)

		prior := entities.Quote{ID: "q-1", QuoteNumber: "Q-1001", CustomerName: "Alice"}
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(prior, nil)
		quotes.EXPECT().Delete(gomock.Any(), "q-1").Return(nil)
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.ActivityLog) error {
				if len(entries) != 1 {
					t.Fatalf("expected 1 log entry, got %d", len(entries))
				}
				e := entries[0]
				if e.ActionType != entities.ActionQuoteDeleted || e.PerformedBy != "Admin" {
					t.Fatalf("unexpected entry: %+v", e)
				}
				if e.QuoteID != nil {
					t.Fatalf("expected no quote id on a deletion entry")
				}
				if e.Details != "Deleted quote Q-1001 for Alice" {
					t.Fatalf("unexpected details: %q", e.Details)
				}
				return nil
			},
		)

		deleted, err := uc.Delete(context.Background(), "q-1", "Admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted.ID != "q-1" || deleted.CustomerName != "Alice" {
			t.Fatalf("expected the last snapshot returned, got %+v", deleted)
		}
	})

	t.Run("log failure does not fail the delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, logs := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", QuoteNumber: "Q-1001"}, nil)
		quotes.EXPECT().Delete(gomock.Any(), "q-1").Return(nil)
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).Return(errors.New("dynamo down"))

		if _, err := uc.Delete(context.Background(), "q-1", "Admin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_Approve(t *testing.T) {
	t.Run("invalid kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)

		_, err := uc.Approve(context.Background(), "q-1", ApprovalKind("deposit"), "Customer")
		if !errors.Is(err, ErrInvalidApprovalType) {
			t.Fatalf("expected ErrInvalidApprovalType, got %v", err)
		}
	})

	t.Run("cad approval requires the waiting stage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.StatusCADCreated}, nil)

		_, err := uc.Approve(context.Background(), "q-1", ApprovalCAD, "Customer")
		if !errors.Is(err, ErrNotPendingCADApproval) {
			t.Fatalf("expected ErrNotPendingCADApproval, got %v", err)
		}
	})

	t.Run("swatch approval requires the waiting stage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.StatusSwatchShipped}, nil)

		_, err := uc.Approve(context.Background(), "q-1", ApprovalSwatch, "Customer")
		if !errors.Is(err, ErrNotPendingSwatchApproval) {
			t.Fatalf("expected ErrNotPendingSwatchApproval, got %v", err)
		}
	})

	t.Run("cad approval writes the flag and audits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, notes, logs := newQuoteUseCase(ctrl)

		prior := entities.Quote{ID: "q-1", QuoteNumber: "Q-1001", Status: entities.StatusCADApprovalPending}
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(prior, nil)
		quotes.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, patch entities.QuotePatch) (entities.Quote, error) {
				if patch.CADApproved == nil || !*patch.CADApproved {
					t.Fatalf("expected cad_approved set, got %+v", patch)
				}
				if patch.Status != nil {
					t.Fatalf("expected the store to own the status advance, got %v", *patch.Status)
				}
				updated := prior
				updated.Status = entities.StatusCADApproved
				updated.CADApproved = true
				return updated, nil
			},
		)
		notes.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, got []entities.QuoteNote) error {
				if len(got) != 1 || got[0].Content != "Status changed to CAD Approved by Jane" {
					t.Fatalf("unexpected notes: %+v", got)
				}
				return nil
			},
		)
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.ActivityLog) error {
				if len(entries) != 1 || entries[0].ActionType != entities.ActionCADApproved {
					t.Fatalf("unexpected entries: %+v", entries)
				}
				if entries[0].Details != "CAD design approved by Jane" {
					t.Fatalf("unexpected details: %q", entries[0].Details)
				}
				return nil
			},
		)

		res, err := uc.Approve(context.Background(), "q-1", ApprovalCAD, "Jane")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusCADApproved {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("swatch approval defaults the approver to Customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, notes, logs := newQuoteUseCase(ctrl)

		prior := entities.Quote{ID: "q-1", QuoteNumber: "Q-1001", Status: entities.StatusSwatchApprovalPending}
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(prior, nil)
		quotes.EXPECT().Update(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, patch entities.QuotePatch) (entities.Quote, error) {
				if patch.SwatchApproved == nil || !*patch.SwatchApproved {
					t.Fatalf("expected swatch_approved set, got %+v", patch)
				}
				if patch.SwatchApprovedBy == nil || *patch.SwatchApprovedBy != "Customer" {
					t.Fatalf("expected the default approver, got %v", patch.SwatchApprovedBy)
				}
				updated := prior
				updated.Status = entities.StatusSwatchApproved
				updated.SwatchApproved = true
				return updated, nil
			},
		)
		notes.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).Return(nil)
		logs.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, entries []entities.ActivityLog) error {
				if len(entries) != 1 || entries[0].ActionType != entities.ActionSwatchApproved {
					t.Fatalf("unexpected entries: %+v", entries)
				}
				if entries[0].Details != "Swatch approved by Customer" {
					t.Fatalf("unexpected details: %q", entries[0].Details)
				}
				return nil
			},
		)

		if _, err := uc.Approve(context.Background(), "q-1", ApprovalSwatch, "  "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestParseApprovalKind(t *testing.T) {
	if kind, err := ParseApprovalKind(" CAD "); err != nil || kind != ApprovalCAD {
		t.Fatalf("expected cad, got %v %v", kind, err)
	}
	if kind, err := ParseApprovalKind("swatch"); err != nil || kind != ApprovalSwatch {
		t.Fatalf("expected swatch, got %v %v", kind, err)
	}
	if _, err := ParseApprovalKind("deposit"); !errors.Is(err, ErrInvalidApprovalType) {
		t.Fatalf("expected ErrInvalidApprovalType, got %v", err)
	}
}
