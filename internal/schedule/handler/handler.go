package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule/dto"
	"github.com/shopspring/decimal"
)

type ScheduleHandler struct {
	uc     schedule.UseCase
	logger logger.ZapLogger
}

func NewScheduleHandler(uc schedule.UseCase, log logger.ZapLogger) *ScheduleHandler {
	return &ScheduleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ScheduleHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("schedule", h.logger).
		On(http.MethodGet, h.GetSchedule).
		On(http.MethodPost, h.SetHours).
		On(http.MethodPut, h.UpdateHours)
}

type scheduleRequest struct {
	ID       *int64          `json:"id"`
	UserID   *int64          `json:"user_id"`
	WorkDate string          `json:"work_date"`
	Hours    decimal.Decimal `json:"hours"`
}

// GetSchedule serves the current month unless both year and month are given.
func (h *ScheduleHandler) GetSchedule(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var year, month int
	rawYear, rawMonth := req.QueryParam("year"), req.QueryParam("month")
	if rawYear != "" && rawMonth != "" {
		var err error
		if year, err = strconv.Atoi(rawYear); err != nil || year < 1 {
			return 0, nil, apperror.Validation("year must be a positive integer")
		}
		if month, err = strconv.Atoi(rawMonth); err != nil {
			return 0, nil, apperror.Validation("month must be an integer")
		}
	}

	view, err := h.uc.GetMonth(ctx, year, month)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, view, nil
}

func (h *ScheduleHandler) SetHours(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body scheduleRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}
	userID, err := dispatch.RequireID(body.UserID, "user_id")
	if err != nil {
		return 0, nil, err
	}
	workDate, err := time.Parse(dto.DateLayout, body.WorkDate)
	if err != nil {
		return 0, nil, apperror.Validation("work_date must be YYYY-MM-DD")
	}

	id, err := h.uc.SetHours(ctx, &dto.SetHoursInput{UserID: userID, WorkDate: workDate, Hours: body.Hours})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, dispatch.Created(id), nil
}

func (h *ScheduleHandler) UpdateHours(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body scheduleRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}
	id, err := dispatch.RequireID(body.ID, "id")
	if err != nil {
		return 0, nil, err
	}

	if err := h.uc.UpdateHours(ctx, &dto.UpdateHoursInput{ID: id, Hours: body.Hours}); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, dispatch.OK(), nil
}
