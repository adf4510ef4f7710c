package schedule

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/schedule/dto"
)

type UseCase interface {
	GetMonth(ctx context.Context, year, month int) (*dto.MonthView, error)
	SetHours(ctx context.Context, input *dto.SetHoursInput) (int64, error)
	UpdateHours(ctx context.Context, input *dto.UpdateHoursInput) error
}
