package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"
	mock_interfaces "rugquotes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestActivityLogUseCase_List(t *testing.T) {
	t.Run("invalid action type", func(t *testing.T) {
		uc := NewActivityLogUseCase(nil)

		bad := entities.ActionType("quote_archived")
		_, err := uc.List(context.Background(), interfaces.ActivityLogFilter{ActionType: &bad})
		if !errors.Is(err, ErrInvalidActionType) {
			t.Fatalf("expected ErrInvalidActionType, got %v", err)
		}
	})

	t.Run("end date covers the whole calendar day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		logs := mock_interfaces.NewMockIActivityLogRepository(ctrl)
		uc := NewActivityLogUseCase(logs)

		end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		logs.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter interfaces.ActivityLogFilter) ([]entities.ActivityLog, error) {
				want := end.AddDate(0, 0, 1)
				if filter.EndDate == nil || !filter.EndDate.Equal(want) {
					t.Fatalf("expected end bound %v, got %v", want, filter.EndDate)
				}
				return nil, nil
			},
		)

		if _, err := uc.List(context.Background(), interfaces.ActivityLogFilter{EndDate: &end, Limit: 10}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("defaults the limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		logs := mock_interfaces.NewMockIActivityLogRepository(ctrl)
		uc := NewActivityLogUseCase(logs)

		logs.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter interfaces.ActivityLogFilter) ([]entities.ActivityLog, error) {
				if filter.Limit != 100 {
					t.Fatalf("expected default limit 100, got %d", filter.Limit)
				}
				return []entities.ActivityLog{{ID: "log-1"}}, nil
			},
		)

		res, err := uc.List(context.Background(), interfaces.ActivityLogFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 || res[0].ID != "log-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("keeps an explicit limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		logs := mock_interfaces.NewMockIActivityLogRepository(ctrl)
		uc := NewActivityLogUseCase(logs)

		logs.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter interfaces.ActivityLogFilter) ([]entities.ActivityLog, error) {
				if filter.Limit != 25 {
					t.Fatalf("expected limit 25, got %d", filter.Limit)
				}
				return nil, nil
			},
		)

		if _, err := uc.List(context.Background(), interfaces.ActivityLogFilter{Limit: 25}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
