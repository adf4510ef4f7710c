package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/events"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func setupInventory(t *testing.T) (inventory.UseCase, *recordingPublisher, func(query string, args ...interface{}) int, int64) {
	t.Helper()
	gw := testutil.SetupTestDB(t)
	pub := &recordingPublisher{}
	uc := usecase.NewInventoryUseCase(repository.NewPGRepository(gw), gw, nil, pub, logger.NewNop())
	materialID := testutil.SeedMaterial(t, gw, "cotton", 20, nil)
	count := func(query string, args ...interface{}) int { return testutil.Count(t, gw, query, args...) }
	return uc, pub, count, materialID
}

func TestAdjustStockRoundTrip(t *testing.T) {
	uc, pub, count, materialID := setupInventory(t)
	ctx := context.Background()
	user := int64(9)

	res, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{MaterialID: materialID, QuantityChange: decimal.NewFromInt(5), UpdatedBy: &user})
	require.NoError(t, err)
	assert.True(t, res.Quantity.Equal(decimal.NewFromInt(25)), res.Quantity.String())

	res, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{MaterialID: materialID, QuantityChange: decimal.NewFromInt(-5), UpdatedBy: &user})
	require.NoError(t, err)
	assert.True(t, res.Quantity.Equal(decimal.NewFromInt(20)), res.Quantity.String())

	records, err := uc.ListMovements(ctx, &dto.MovementFilters{MaterialID: materialID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].QuantityChange.Equal(decimal.NewFromInt(5)))
	assert.True(t, records[1].QuantityChange.Equal(decimal.NewFromInt(-5)))
	assert.Equal(t, user, *records[0].UpdatedBy)
	assert.Equal(t, 2, count(`SELECT count(*) FROM material_inventory WHERE material_id = ?`, materialID))

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.StockAdjusted, pub.events[0].EventType)
}

func TestAdjustStockAllowsNegativeStock(t *testing.T) {
	uc, _, _, materialID := setupInventory(t)

	res, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{MaterialID: materialID, QuantityChange: decimal.NewFromFloat(-32.5)})
	require.NoError(t, err)
	assert.True(t, res.Quantity.Equal(decimal.NewFromFloat(-12.5)), res.Quantity.String())
}

func TestAdjustStockLedgerMatchesQuantity(t *testing.T) {
	uc, _, _, materialID := setupInventory(t)
	ctx := context.Background()
	initial := decimal.NewFromInt(20)

	var last decimal.Decimal
	for _, d := range []float64{3, -1.5, 10, -7.25, 0} {
		res, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{MaterialID: materialID, QuantityChange: decimal.NewFromFloat(d)})
		require.NoError(t, err)
		last = res.Quantity
	}

	records, err := uc.ListMovements(ctx, &dto.MovementFilters{MaterialID: materialID})
	require.NoError(t, err)
	require.Len(t, records, 5)
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.QuantityChange)
	}
	assert.True(t, last.Sub(initial).Equal(sum), "ledger %s vs quantity delta %s", sum, last.Sub(initial))
}

func TestAdjustStockUnknownMaterial(t *testing.T) {
	uc, pub, count, _ := setupInventory(t)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{MaterialID: 999, QuantityChange: decimal.NewFromInt(1)})
	assert.True(t, apperror.IsNotFound(err), "got %v", err)
	assert.Equal(t, 0, count(`SELECT count(*) FROM material_inventory`))
	assert.Empty(t, pub.events)
}

func TestAdjustStockRequiresMaterial(t *testing.T) {
	uc, _, _, _ := setupInventory(t)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
