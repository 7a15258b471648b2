package interfaces

import (
	"context"
	"time"

	"rugquotes/internal/domain/entities"
)

// ActivityLogFilter narrows an activity-log listing. EndDate is exclusive.
type ActivityLogFilter struct {
	ActionType *entities.ActionType
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

// IActivityLogRepository abstracts DynamoDB persistence for ActivityLog.
// Entries are append-only and must survive the deletion of their quote.

type IActivityLogRepository interface {
	BatchCreate(ctx context.Context, logs []entities.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]entities.ActivityLog, error)
}
