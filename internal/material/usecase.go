package material

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/material/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type UseCase interface {
	CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error)
	GetMaterial(ctx context.Context, id int64) (*model.Material, error)
	ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, error)
	ReplaceMaterial(ctx context.Context, input *dto.ReplaceMaterialInput) (*model.Material, error)
	DeleteMaterial(ctx context.Context, id int64) error
}
