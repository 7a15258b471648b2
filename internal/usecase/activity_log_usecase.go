package usecase

import (
	"context"
	"errors"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"
)

var ErrInvalidActionType = errors.New("invalid action type")

const defaultActivityLogLimit = 100

// IActivityLogUseCase exposes the read side of the audit trail.

type IActivityLogUseCase interface {
	List(ctx context.Context, filter interfaces.ActivityLogFilter) ([]entities.ActivityLog, error)
}

type ActivityLogUseCase struct {
	logs interfaces.IActivityLogRepository
}

var _ IActivityLogUseCase = (*ActivityLogUseCase)(nil)

func NewActivityLogUseCase(logs interfaces.IActivityLogRepository) *ActivityLogUseCase {
	return &ActivityLogUseCase{logs: logs}
}

func (u *ActivityLogUseCase) List(ctx context.Context, filter interfaces.ActivityLogFilter) ([]entities.ActivityLog, error) {
	if filter.ActionType != nil && !filter.ActionType.Valid() {
		return nil, ErrInvalidActionType
	}
	if filter.EndDate != nil {
		// Callers pass an inclusive calendar date; push the bound one day
		// forward so the whole end date is included.
		end := filter.EndDate.AddDate(0, 0, 1)
		filter.EndDate = &end
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultActivityLogLimit
	}
	return u.logs.List(ctx, filter)
}
