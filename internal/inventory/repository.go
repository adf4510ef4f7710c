package inventory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// ApplyDelta adds delta to the material's quantity and returns the new value.
	ApplyDelta(ctx context.Context, materialID int64, delta decimal.Decimal, at time.Time) (decimal.Decimal, error)

	// Movements / Audit
	LogMovement(ctx context.Context, record *model.InventoryRecord) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryRecord, error)
}
