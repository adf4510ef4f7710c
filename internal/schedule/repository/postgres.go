package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	db *database.Gateway
}

func NewPGRepository(db *database.Gateway) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Upsert(ctx context.Context, e *model.ScheduleEntry) (int64, error) {
	query := `
        INSERT INTO schedule (user_id, work_date, hours, created_at, updated_at)
        VALUES (:user_id, :work_date, :hours, :created_at, :updated_at)
        ON CONFLICT (user_id, work_date)
        DO UPDATE SET hours = excluded.hours, updated_at = excluded.updated_at
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, e)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert schedule entry: %w", err)
	}
	e.ID = id
	return id, nil
}

func (r *PGRepository) UpdateHours(ctx context.Context, id int64, hours decimal.Decimal, at time.Time) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`UPDATE schedule SET hours = ?, updated_at = ? WHERE id = ?`), hours, at, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule hours: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("schedule entry %d not found", id))
}

func (r *PGRepository) ListRange(ctx context.Context, from, to time.Time) ([]model.ScheduleRow, error) {
	q := r.db.Querier(ctx)
	query := q.Rebind(`
        SELECT s.id, s.user_id, s.work_date, s.hours, u.full_name, u.login
        FROM schedule s
        JOIN users u ON s.user_id = u.id
        WHERE s.work_date >= ? AND s.work_date < ?
        ORDER BY s.work_date, u.full_name, s.id
    `)

	rows := []model.ScheduleRow{}
	if err := q.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	return rows, nil
}
