package inventory

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryRecord, error)
}
