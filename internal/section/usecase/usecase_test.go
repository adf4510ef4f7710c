package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/section/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/section/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/section/usecase"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionLifecycle(t *testing.T) {
	gw := testutil.SetupTestDB(t)
	uc := usecase.NewSectionUseCase(repository.NewPGRepository(gw), gw, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateSection(ctx, &dto.CreateSectionInput{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	fabrics, err := uc.CreateSection(ctx, &dto.CreateSectionInput{Name: "Fabrics", Description: "rolls"})
	require.NoError(t, err)
	_, err = uc.CreateSection(ctx, &dto.CreateSectionInput{Name: "Notions"})
	require.NoError(t, err)

	sections, err := uc.ListSections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 2)

	cotton := testutil.SeedMaterial(t, gw, "Cotton", 5, &fabrics.ID)

	require.NoError(t, uc.DeleteSection(ctx, fabrics.ID))
	assert.Equal(t, 1, testutil.Count(t, gw, `SELECT count(*) FROM material_sections`))
	assert.Equal(t, 1, testutil.Count(t, gw, `SELECT count(*) FROM materials WHERE id = ? AND section_id IS NULL`, cotton))

	assert.True(t, apperror.IsNotFound(uc.DeleteSection(ctx, fabrics.ID)))
}
