package section

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, section *model.Section) error
	FindAll(ctx context.Context) ([]model.Section, error)
	Delete(ctx context.Context, id int64) error

	// DetachMaterials clears section_id on every material filed under the section.
	DetachMaterials(ctx context.Context, sectionID int64) (int64, error)
}
