package section

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/section/dto"
)

type UseCase interface {
	CreateSection(ctx context.Context, input *dto.CreateSectionInput) (*model.Section, error)
	ListSections(ctx context.Context) ([]model.Section, error)
	DeleteSection(ctx context.Context, id int64) error
}
