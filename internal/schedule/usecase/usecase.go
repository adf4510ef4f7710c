package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/user"
	"github.com/shopspring/decimal"
)

var maxDailyHours = decimal.NewFromInt(24)

type scheduleUseCase struct {
	repo   schedule.Repository
	users  user.Repository
	tx     database.Transactor
	logger logger.ZapLogger
	now    func() time.Time
}

func NewScheduleUseCase(repo schedule.Repository, users user.Repository, tx database.Transactor, log logger.ZapLogger) schedule.UseCase {
	return &scheduleUseCase{
		repo:   repo,
		users:  users,
		tx:     tx,
		logger: log,
		now:    time.Now,
	}
}

// GetMonth falls back to the current month when year or month is zero.
func (uc *scheduleUseCase) GetMonth(ctx context.Context, year, month int) (*dto.MonthView, error) {
	if year == 0 || month == 0 {
		now := uc.now()
		year, month = now.Year(), int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, apperror.Validation("month must be between 1 and 12")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	view := &dto.MonthView{Year: year, Month: time.Month(month)}
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		rows, err := uc.repo.ListRange(ctx, from, to)
		if err != nil {
			return err
		}
		staff, err := uc.users.FindByRoles(ctx, model.RoleWorker, model.RoleManager)
		if err != nil {
			return err
		}

		view.Schedule = make([]dto.EntryView, 0, len(rows))
		for _, row := range rows {
			view.Schedule = append(view.Schedule, dto.NewEntryView(row))
		}
		view.Users = make([]dto.UserView, 0, len(staff))
		for _, u := range staff {
			view.Users = append(view.Users, dto.UserView{ID: u.ID, FullName: u.FullName, Login: u.Login})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func validateHours(hours decimal.Decimal) error {
	if hours.IsNegative() || hours.GreaterThan(maxDailyHours) {
		return apperror.Validation("hours must be between 0 and 24")
	}
	return nil
}

func (uc *scheduleUseCase) SetHours(ctx context.Context, input *dto.SetHoursInput) (int64, error) {
	if input.UserID <= 0 {
		return 0, apperror.Validation("user_id is required")
	}
	if input.WorkDate.IsZero() {
		return 0, apperror.Validation("work_date is required")
	}
	if err := validateHours(input.Hours); err != nil {
		return 0, err
	}

	y, m, d := input.WorkDate.Date()
	now := uc.now().UTC()
	entry := &model.ScheduleEntry{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		UserID:    input.UserID,
		WorkDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Hours:     input.Hours,
	}

	var id int64
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.users.FindByID(ctx, input.UserID); err != nil {
			return err
		}
		var err error
		id, err = uc.repo.Upsert(ctx, entry)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (uc *scheduleUseCase) UpdateHours(ctx context.Context, input *dto.UpdateHoursInput) error {
	if input.ID <= 0 {
		return apperror.Validation("id is required")
	}
	if err := validateHours(input.Hours); err != nil {
		return err
	}
	return uc.repo.UpdateHours(ctx, input.ID, input.Hours, uc.now().UTC())
}
