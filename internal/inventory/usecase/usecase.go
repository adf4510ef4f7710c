package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/cache"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/events"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/metrics"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	tx        database.Transactor
	cache     *cache.RedisClient
	publisher events.Publisher
	logger    logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, tx database.Transactor, cache *cache.RedisClient, publisher events.Publisher, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		tx:        tx,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// AdjustStock applies a signed delta and appends the matching ledger row in one
// transaction. No floor is enforced: stock may go negative.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error) {
	if input.MaterialID <= 0 {
		return nil, apperror.Validation("material id is required")
	}

	now := time.Now().UTC()
	record := &model.InventoryRecord{
		MaterialID:     input.MaterialID,
		QuantityChange: input.QuantityChange,
		UpdatedBy:      input.UpdatedBy,
		CreatedAt:      now,
	}

	result := &dto.AdjustStockResult{MaterialID: input.MaterialID}
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		quantity, err := uc.repo.ApplyDelta(ctx, input.MaterialID, input.QuantityChange, now)
		if err != nil {
			return err
		}
		result.Quantity = quantity
		return uc.repo.LogMovement(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	metrics.StockAdjustments.Inc()
	if err := uc.cache.InvalidateMaterialLists(ctx); err != nil {
		uc.logger.Warn("failed to invalidate material cache", zap.Error(err))
	}
	uc.publish(ctx, record, result)

	return result, nil
}

func (uc *inventoryUseCase) publish(ctx context.Context, record *model.InventoryRecord, result *dto.AdjustStockResult) {
	ev, err := events.New(events.StockAdjusted, record.MaterialID, map[string]interface{}{
		"material_id":     record.MaterialID,
		"quantity_change": record.QuantityChange,
		"quantity":        result.Quantity,
		"updated_by":      record.UpdatedBy,
	})
	if err == nil {
		err = uc.publisher.Publish(ctx, ev)
	}
	if err != nil {
		uc.logger.Error("failed to publish stock adjustment",
			zap.Int64("material_id", record.MaterialID),
			zap.Error(err),
		)
	}
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryRecord, error) {
	if filters.MaterialID <= 0 {
		return nil, apperror.Validation("material id is required")
	}
	return uc.repo.ListMovements(ctx, filters)
}
