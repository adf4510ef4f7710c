package user

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	// FindByRoles orders by full name.
	FindByRoles(ctx context.Context, roles ...model.Role) ([]model.User, error)
	Delete(ctx context.Context, id int64) error

	IsLoginUnique(ctx context.Context, login string) (bool, error)
}
