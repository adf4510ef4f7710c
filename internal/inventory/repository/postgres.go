package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	db *database.Gateway
}

func NewPGRepository(db *database.Gateway) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) ApplyDelta(ctx context.Context, materialID int64, delta decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	q := r.db.Querier(ctx)
	query := q.Rebind(`
        UPDATE materials
        SET quantity = quantity + ?, updated_at = ?
        WHERE id = ?
        RETURNING quantity
    `)

	var quantity decimal.Decimal
	err := q.GetContext(ctx, &quantity, query, delta, at, materialID)
	if err != nil {
		if database.IsNoRows(err) {
			return decimal.Zero, apperror.NotFound("material %d not found", materialID)
		}
		return decimal.Zero, fmt.Errorf("failed to update stock: %w", err)
	}
	return quantity, nil
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.InventoryRecord) error {
	query := `
        INSERT INTO material_inventory (material_id, quantity_change, updated_by, created_at)
        VALUES (:material_id, :quantity_change, :updated_by, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, m)
	if err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	m.ID = id
	return nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryRecord, error) {
	q := r.db.Querier(ctx)
	query := `SELECT id, material_id, quantity_change, updated_by, created_at
        FROM material_inventory WHERE material_id = ? ORDER BY created_at ASC, id ASC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	items := []model.InventoryRecord{}
	if err := q.SelectContext(ctx, &items, q.Rebind(query), f.MaterialID); err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return items, nil
}
