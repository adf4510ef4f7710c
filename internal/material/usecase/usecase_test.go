package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	invrepo "github.com/fekuna/omnipos-workshop-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/material"
	"github.com/fekuna/omnipos-workshop-service/internal/material/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/material/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/material/usecase"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (material.UseCase, func(query string, args ...interface{}) int) {
	t.Helper()
	gw := testutil.SetupTestDB(t)
	uc := usecase.NewMaterialUseCase(repository.NewPGRepository(gw), invrepo.NewPGRepository(gw), gw, nil, logger.NewNop())
	return uc, func(query string, args ...interface{}) int { return testutil.Count(t, gw, query, args...) }
}

func TestCreateAndGetMaterial(t *testing.T) {
	uc, count := newUseCase(t)
	ctx := context.Background()

	m, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{
		Name:     "Cotton",
		Color:    "white",
		Quantity: decimal.NewFromFloat(12.5),
	})
	require.NoError(t, err)
	require.NotZero(t, m.ID)

	got, err := uc.GetMaterial(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cotton", got.Name)
	assert.True(t, got.Quantity.Equal(decimal.NewFromFloat(12.5)))
	assert.Empty(t, got.History)
	assert.Equal(t, 0, count(`SELECT count(*) FROM material_inventory`))
}

func TestCreateMaterialRequiresName(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.CreateMaterial(context.Background(), &dto.CreateMaterialInput{Name: "  "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestReplaceMaterialWritesNoLedgerRow(t *testing.T) {
	uc, count := newUseCase(t)
	ctx := context.Background()

	m, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{Name: "Linen", Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)

	replaced, err := uc.ReplaceMaterial(ctx, &dto.ReplaceMaterialInput{
		ID:       m.ID,
		Name:     "Linen",
		Size:     "L",
		Quantity: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "L", replaced.Size)
	assert.True(t, replaced.Quantity.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 0, count(`SELECT count(*) FROM material_inventory`))

	_, err = uc.ReplaceMaterial(ctx, &dto.ReplaceMaterialInput{ID: 404, Name: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestListMaterialsBySection(t *testing.T) {
	gw := testutil.SetupTestDB(t)
	uc := usecase.NewMaterialUseCase(repository.NewPGRepository(gw), invrepo.NewPGRepository(gw), gw, nil, logger.NewNop())
	ctx := context.Background()

	sectionID := testutil.SeedSection(t, gw, "Fabrics")
	testutil.SeedMaterial(t, gw, "Cotton", 1, &sectionID)
	testutil.SeedMaterial(t, gw, "Buttons", 1, nil)

	all, err := uc.ListMaterials(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := uc.ListMaterials(ctx, &dto.MaterialFilters{SectionID: &sectionID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Cotton", filtered[0].Name)
}

func TestDeleteMaterial(t *testing.T) {
	uc, count := newUseCase(t)
	ctx := context.Background()

	m, err := uc.CreateMaterial(ctx, &dto.CreateMaterialInput{Name: "Thread"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteMaterial(ctx, m.ID))
	assert.Equal(t, 0, count(`SELECT count(*) FROM materials`))
	assert.True(t, apperror.IsNotFound(uc.DeleteMaterial(ctx, m.ID)))
}
