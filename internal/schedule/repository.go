package schedule

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// Upsert inserts the entry or updates hours of the existing (user, date) row
	// and returns the row id either way.
	Upsert(ctx context.Context, entry *model.ScheduleEntry) (int64, error)
	UpdateHours(ctx context.Context, id int64, hours decimal.Decimal, at time.Time) error
	// ListRange returns entries with from <= work_date < to, joined with their user.
	ListRange(ctx context.Context, from, to time.Time) ([]model.ScheduleRow, error)
}
