package material

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/material/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, material *model.Material) error
	FindByID(ctx context.Context, id int64) (*model.Material, error)
	FindAll(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, error)
	Update(ctx context.Context, material *model.Material) error
	Delete(ctx context.Context, id int64) error
}
