package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQuoteNotFound            = errors.New("quote not found")
	ErrInvalidQuoteID           = errors.New("invalid quote id")
	ErrMissingRequiredFields    = errors.New("missing required fields: customer_name, customer_number, customer_company")
	ErrInvalidStatus            = errors.New("invalid status")
	ErrInvalidApprovalType      = errors.New("invalid approval type")
	ErrNotPendingCADApproval    = errors.New("quote is not pending CAD approval")
	ErrNotPendingSwatchApproval = errors.New("quote is not pending swatch approval")
)

// ApprovalKind selects which customer approval is being committed.

type ApprovalKind string

const (
	ApprovalCAD    ApprovalKind = "cad"
	ApprovalSwatch ApprovalKind = "swatch"
)

func ParseApprovalKind(s string) (ApprovalKind, error) {
	switch ApprovalKind(strings.ToLower(strings.TrimSpace(s))) {
	case ApprovalCAD:
		return ApprovalCAD, nil
	case ApprovalSwatch:
		return ApprovalSwatch, nil
	}
	return "", ErrInvalidApprovalType
}

// CreateQuoteInput carries the fields accepted at quote creation. The quote
// number is allocated by the store, never by callers.
type CreateQuoteInput struct {
	CustomerName     string
	CustomerNumber   string
	CustomerCompany  string
	ProductName      string
	SalesOrderNumber string
	CustomRugSKU     string
	Status           string
	CADFileURL       string
	ImageRenderURL   string
	DocumentsURL     string
}

// IQuoteUseCase exposes the quote lifecycle operations.
//
//   - Update is the general staff edit: snapshot, transition rules, commit,
//     then the change-diff audit trail.
//   - Approve is the only path that may flip an approval flag while the quote
//     sits in its waiting stage; the general edit cannot bypass it because
//     the transition rules reset flags on a status regression.

type IQuoteUseCase interface {
	Create(ctx context.Context, in CreateQuoteInput, actor string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter interfaces.QuoteListFilter) ([]entities.Quote, error)
	Update(ctx context.Context, id string, patch entities.QuotePatch, actor string) (entities.Quote, error)
	Delete(ctx context.Context, id string, actor string) (entities.Quote, error)
	Approve(ctx context.Context, id string, kind ApprovalKind, approvedBy string) (entities.Quote, error)
}

type QuoteUseCase struct {
	quotes interfaces.IQuoteRepository
	notes  interfaces.IQuoteNoteRepository
	logs   interfaces.IActivityLogRepository
	log    *zap.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	notes interfaces.IQuoteNoteRepository,
	logs interfaces.IActivityLogRepository,
	log *zap.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, notes: notes, logs: logs, log: log}
}

func (u *QuoteUseCase) Create(ctx context.Context, in CreateQuoteInput, actor string) (entities.Quote, error) {
	name := strings.TrimSpace(in.CustomerName)
	number := strings.TrimSpace(in.CustomerNumber)
	company := strings.TrimSpace(in.CustomerCompany)
	if name == "" || number == "" || company == "" {
		return entities.Quote{}, ErrMissingRequiredFields
	}

	status := entities.StatusInquiry
	if s := strings.TrimSpace(in.Status); s != "" {
		status = entities.QuoteStatus(s)
		if !status.Valid() {
			return entities.Quote{}, ErrInvalidStatus
		}
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:               uuid.NewString(),
		CustomerName:     name,
		CustomerNumber:   number,
		CustomerCompany:  company,
		ProductName:      optionalString(in.ProductName),
		SalesOrderNumber: optionalString(in.SalesOrderNumber),
		CustomRugSKU:     optionalString(in.CustomRugSKU),
		Status:           status,
		CADFileURL:       optionalString(in.CADFileURL),
		ImageRenderURL:   optionalString(in.ImageRenderURL),
		DocumentsURL:     optionalString(in.DocumentsURL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := u.quotes.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	u.audit(ctx, created, actor, []entities.AuditEvent{{
		Action:  entities.ActionQuoteCreated,
		Details: fmt.Sprintf("Created quote for %s (%s)", created.CustomerName, created.CustomerCompany),
	}})
	return created, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, filter interfaces.QuoteListFilter) ([]entities.Quote, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.quotes.List(ctx, filter)
}

// Update applies a staff edit: it reads the pre-write snapshot, runs the
// transition rules, commits the patch and then appends the audit trail
// derived from the diff. A failed primary write produces no audit artifacts;
// a failed audit write is surfaced to the operational log only, because the
// committed update must not be rolled back for it.
func (u *QuoteUseCase) Update(ctx context.Context, id string, patch entities.QuotePatch, actor string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if err := validatePatch(patch); err != nil {
		return entities.Quote{}, err
	}

	prior, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if prior.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	final := entities.ApplyTransition(prior, patch, actor)

	updated, err := u.quotes.Update(ctx, id, final)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	u.audit(ctx, updated, actor, entities.DiffEvents(prior, final, actor))
	return updated, nil
}

// Delete removes the quote and returns the last snapshot so callers can
// still reach its identifiers (the portal cache key needs the customer
// number after the row is gone).
func (u *QuoteUseCase) Delete(ctx context.Context, id string, actor string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	prior, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if prior.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	if err := u.quotes.Delete(ctx, id); err != nil {
		return entities.Quote{}, err
	}

	// QuoteID stays nil: the log row has to outlive the quote.
	entry := entities.ActivityLog{
		ID:          uuid.NewString(),
		ActionType:  entities.ActionQuoteDeleted,
		QuoteNumber: prior.QuoteNumber,
		PerformedBy: actor,
		Details:     fmt.Sprintf("Deleted quote %s for %s", prior.QuoteNumber, prior.CustomerName),
		CreatedAt:   time.Now().UTC(),
	}
	if err := u.logs.BatchCreate(ctx, []entities.ActivityLog{entry}); err != nil {
		u.log.Warn("activity log write failed after delete",
			zap.String("quote_number", prior.QuoteNumber),
			zap.Error(err))
	}
	return prior, nil
}

// Approve commits a customer approval. Eligibility is checked against the
// stored status, not the client's view: callers that skip the consent UI
// still cannot approve outside the matching waiting stage.
func (u *QuoteUseCase) Approve(ctx context.Context, id string, kind ApprovalKind, approvedBy string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	prior, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if prior.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	approver := strings.TrimSpace(approvedBy)
	if approver == "" {
		approver = "Customer"
	}

	var patch entities.QuotePatch
	var event entities.AuditEvent
	approved := true

	switch kind {
	case ApprovalCAD:
		if prior.Status != entities.StatusCADApprovalPending {
			return entities.Quote{}, ErrNotPendingCADApproval
		}
		// The store stamps cad_approved_at and advances status to
		// "CAD Approved"; the application only writes the flag.
		patch = entities.QuotePatch{CADApproved: &approved}
		event = entities.AuditEvent{
			Note:    fmt.Sprintf("Status changed to CAD Approved by %s", approver),
			Action:  entities.ActionCADApproved,
			Details: fmt.Sprintf("CAD design approved by %s", approver),
		}
	case ApprovalSwatch:
		if prior.Status != entities.StatusSwatchApprovalPending {
			return entities.Quote{}, ErrNotPendingSwatchApproval
		}
		patch = entities.QuotePatch{SwatchApproved: &approved, SwatchApprovedBy: &approver}
		event = entities.AuditEvent{
			Note:    fmt.Sprintf("Status changed to Swatch Approved by %s", approver),
			Action:  entities.ActionSwatchApproved,
			Details: fmt.Sprintf("Swatch approved by %s", approver),
		}
	default:
		return entities.Quote{}, ErrInvalidApprovalType
	}

	updated, err := u.quotes.Update(ctx, id, patch)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	u.audit(ctx, updated, approver, []entities.AuditEvent{event})
	return updated, nil
}

// audit appends the note and activity-log batches for the given events.
// Failures are logged and swallowed: the primary operation already committed
// and reports success regardless (accepted weak-consistency gap).
func (u *QuoteUseCase) audit(ctx context.Context, q entities.Quote, actor string, events []entities.AuditEvent) {
	if len(events) == 0 {
		return
	}

	now := time.Now().UTC()
	var notes []entities.QuoteNote
	logs := make([]entities.ActivityLog, 0, len(events))

	for _, ev := range events {
		if ev.Note != "" {
			notes = append(notes, entities.QuoteNote{
				ID:        uuid.NewString(),
				QuoteID:   q.ID,
				Content:   ev.Note,
				CreatedBy: actor,
				CreatedAt: now,
			})
		}
		quoteID := q.ID
		logs = append(logs, entities.ActivityLog{
			ID:          uuid.NewString(),
			ActionType:  ev.Action,
			QuoteID:     &quoteID,
			QuoteNumber: q.QuoteNumber,
			PerformedBy: actor,
			Details:     ev.Details,
			CreatedAt:   now,
		})
	}

	if len(notes) > 0 {
		if err := u.notes.BatchCreate(ctx, notes); err != nil {
			u.log.Warn("quote note write failed after update",
				zap.String("quote_id", q.ID),
				zap.Int("notes", len(notes)),
				zap.Error(err))
		}
	}
	if err := u.logs.BatchCreate(ctx, logs); err != nil {
		u.log.Warn("activity log write failed after update",
			zap.String("quote_id", q.ID),
			zap.Int("entries", len(logs)),
			zap.Error(err))
	}
}

func validatePatch(patch entities.QuotePatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return ErrInvalidStatus
	}
	for _, f := range []*string{patch.CustomerName, patch.CustomerNumber, patch.CustomerCompany} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return ErrMissingRequiredFields
		}
	}
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
