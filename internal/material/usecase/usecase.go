package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/cache"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/material"
	"github.com/fekuna/omnipos-workshop-service/internal/material/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

type materialUseCase struct {
	repo   material.Repository
	ledger inventory.Repository
	tx     database.Transactor
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewMaterialUseCase(repo material.Repository, ledger inventory.Repository, tx database.Transactor, cache *cache.RedisClient, log logger.ZapLogger) material.UseCase {
	return &materialUseCase{
		repo:   repo,
		ledger: ledger,
		tx:     tx,
		cache:  cache,
		logger: log,
	}
}

func (uc *materialUseCase) CreateMaterial(ctx context.Context, input *dto.CreateMaterialInput) (*model.Material, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	now := time.Now().UTC()
	m := &model.Material{
		BaseModel:    model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Size:         input.Size,
		Color:        input.Color,
		Quantity:     input.Quantity,
		MaterialType: input.MaterialType,
		ImageURL:     input.ImageURL,
		SectionID:    input.SectionID,
	}

	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return uc.repo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	return m, nil
}

// GetMaterial returns the material together with its ledger, oldest first.
func (uc *materialUseCase) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	var m *model.Material
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		m.History, err = uc.ledger.ListMovements(ctx, &invdto.MovementFilters{MaterialID: id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *materialUseCase) ListMaterials(ctx context.Context, filters *dto.MaterialFilters) ([]model.Material, error) {
	if filters == nil {
		filters = &dto.MaterialFilters{}
	}

	cacheKey, err := cache.MaterialListKey(filters)
	if err == nil {
		var cached []model.Material
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("material cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	materials, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, materials, listCacheTTL); err != nil {
			uc.logger.Warn("material cache write failed", zap.Error(err))
		}
	}
	return materials, nil
}

func (uc *materialUseCase) ReplaceMaterial(ctx context.Context, input *dto.ReplaceMaterialInput) (*model.Material, error) {
	if input.ID <= 0 {
		return nil, apperror.Validation("id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	var m *model.Material
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}

		m.Name = name
		m.Size = input.Size
		m.Color = input.Color
		m.Quantity = input.Quantity
		m.MaterialType = input.MaterialType
		m.ImageURL = input.ImageURL
		m.SectionID = input.SectionID
		m.UpdatedAt = time.Now().UTC()
		return uc.repo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	return m, nil
}

func (uc *materialUseCase) DeleteMaterial(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.Validation("id is required")
	}
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.invalidateListCache(ctx)
	return nil
}

func (uc *materialUseCase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.InvalidateMaterialLists(ctx); err != nil {
		uc.logger.Warn("failed to invalidate material cache", zap.Error(err))
	}
}
