package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, login, password, role, full_name, created_at`

type PGRepository struct {
	db *database.Gateway
}

func NewPGRepository(db *database.Gateway) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (login, password, role, full_name, created_at)
        VALUES (:login, :password, :role, :full_name, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, u)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id, apperror.NotFound("user %d not found", id))
}

func (r *PGRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE login = ?`, login, apperror.NotFound("user %q not found", login))
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}, notFound error) (*model.User, error) {
	q := r.db.Querier(ctx)
	var u model.User
	if err := q.GetContext(ctx, &u, q.Rebind(query), arg); err != nil {
		if database.IsNoRows(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`
	if err := r.db.Querier(ctx).SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *PGRepository) FindByRoles(ctx context.Context, roles ...model.Role) ([]model.User, error) {
	users := []model.User{}
	if len(roles) == 0 {
		return users, nil
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE role IN (?) ORDER BY full_name, id`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}
	q := r.db.Querier(ctx)
	if err := q.SelectContext(ctx, &users, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

// Delete drops the user's schedule entries with it.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.Querier(ctx)
	if _, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM schedule WHERE user_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete user schedule: %w", err)
	}
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("user %d not found", id))
}

func (r *PGRepository) IsLoginUnique(ctx context.Context, login string) (bool, error) {
	q := r.db.Querier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT count(*) FROM users WHERE login = ?`), login); err != nil {
		return false, err
	}
	return count == 0, nil
}
