package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type PGRepository struct {
	db *database.Gateway
}

func NewPGRepository(db *database.Gateway) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Section) error {
	query := `
        INSERT INTO material_sections (name, description, created_at)
        VALUES (:name, :description, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, s)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	s.ID = id
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Section, error) {
	sections := []model.Section{}
	query := `SELECT id, name, description, created_at FROM material_sections ORDER BY created_at DESC, id DESC`
	if err := r.db.Querier(ctx).SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM material_sections WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("section %d not found", id))
}

func (r *PGRepository) DetachMaterials(ctx context.Context, sectionID int64) (int64, error) {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`UPDATE materials SET section_id = NULL WHERE section_id = ?`), sectionID)
	if err != nil {
		return 0, fmt.Errorf("failed to detach materials: %w", err)
	}
	return res.RowsAffected()
}
