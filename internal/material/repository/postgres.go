package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/material/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

const materialColumns = `id, name, size, color, quantity, material_type, image_url, section_id, created_at, updated_at`

type PGRepository struct {
	db *database.Gateway
}

func NewPGRepository(db *database.Gateway) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.Material) error {
	query := `
        INSERT INTO materials (
            name, size, color, quantity, material_type, image_url, section_id, created_at, updated_at
        )
        VALUES (
            :name, :size, :color, :quantity, :material_type, :image_url, :section_id, :created_at, :updated_at
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, m)
	if err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	m.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Material, error) {
	q := r.db.Querier(ctx)
	var m model.Material
	query := q.Rebind(`SELECT ` + materialColumns + ` FROM materials WHERE id = ?`)
	if err := q.GetContext(ctx, &m, query, id); err != nil {
		if database.IsNoRows(err) {
			return nil, apperror.NotFound("material %d not found", id)
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MaterialFilters) ([]model.Material, error) {
	q := r.db.Querier(ctx)
	query := `SELECT ` + materialColumns + ` FROM materials`
	var args []interface{}
	if f != nil && f.SectionID != nil {
		query += ` WHERE section_id = ?`
		args = append(args, *f.SectionID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	materials := []model.Material{}
	if err := q.SelectContext(ctx, &materials, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

func (r *PGRepository) Update(ctx context.Context, m *model.Material) error {
	query := `
        UPDATE materials
        SET name = :name,
            size = :size,
            color = :color,
            quantity = :quantity,
            material_type = :material_type,
            image_url = :image_url,
            section_id = :section_id,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.db.Querier(ctx).NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("material %d not found", m.ID))
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM materials WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("material %d not found", id))
}
