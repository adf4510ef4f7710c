package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/cache"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/section"
	"github.com/fekuna/omnipos-workshop-service/internal/section/dto"
	"go.uber.org/zap"
)

type sectionUseCase struct {
	repo   section.Repository
	tx     database.Transactor
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewSectionUseCase(repo section.Repository, tx database.Transactor, cache *cache.RedisClient, log logger.ZapLogger) section.UseCase {
	return &sectionUseCase{
		repo:   repo,
		tx:     tx,
		cache:  cache,
		logger: log,
	}
}

func (uc *sectionUseCase) CreateSection(ctx context.Context, input *dto.CreateSectionInput) (*model.Section, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	s := &model.Section{
		Name:        name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *sectionUseCase) ListSections(ctx context.Context) ([]model.Section, error) {
	return uc.repo.FindAll(ctx)
}

// DeleteSection leaves the section's materials in place without a section.
func (uc *sectionUseCase) DeleteSection(ctx context.Context, id int64) error {
	var detached int64
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		detached, err = uc.repo.DetachMaterials(ctx, id)
		if err != nil {
			return err
		}
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if detached > 0 {
		if err := uc.cache.InvalidateMaterialLists(ctx); err != nil {
			uc.logger.Warn("failed to invalidate material cache", zap.Error(err))
		}
	}
	uc.logger.Info("section deleted", zap.Int64("section_id", id), zap.Int64("materials_detached", detached))
	return nil
}
