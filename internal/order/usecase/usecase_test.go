package usecase_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/events"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/order"
	"github.com/fekuna/omnipos-workshop-service/internal/order/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/order/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/order/usecase"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
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

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.EventType)
	}
	return out
}

type fixture struct {
	uc  order.UseCase
	gw  *database.Gateway
	pub *recordingPublisher
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gw := testutil.SetupTestDB(t)
	pub := &recordingPublisher{}
	return &fixture{
		uc:  usecase.NewOrderUseCase(repository.NewPGRepository(gw), gw, pub, logger.NewNop()),
		gw:  gw,
		pub: pub,
	}
}

func (f *fixture) storedStatus(t *testing.T, id int64) model.OrderStatus {
	t.Helper()
	var status string
	require.NoError(t, f.gw.DB.Get(&status, f.gw.DB.Rebind(`SELECT status FROM orders WHERE id = ?`), id))
	return model.OrderStatus(status)
}

func TestCottonScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "A-1",
		Items:       []dto.ItemInput{{Material: "cotton", Quantity: 10}},
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, model.OrderStatusCreated, o.Status)
	itemID := o.Items[0].ID

	res, err := f.uc.SetItemProgress(ctx, itemID, 10)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, res.Status)
	assert.Equal(t, model.OrderStatusCompleted, f.storedStatus(t, o.ID))

	res, err = f.uc.SetItemProgress(ctx, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, res.Status)
	assert.Equal(t, model.OrderStatusInProgress, f.storedStatus(t, o.ID))

	res, err = f.uc.SetItemProgress(ctx, itemID, 0)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCreated, res.Status)
	assert.Equal(t, model.OrderStatusCreated, f.storedStatus(t, o.ID))

	assert.Equal(t, []string{
		events.OrderCreated,
		events.OrderStatusChanged,
		events.OrderStatusChanged,
		events.OrderStatusChanged,
	}, f.pub.types())
}

func TestStoredStatusFollowsItems(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "B-2",
		Items: []dto.ItemInput{
			{Material: "wool", Quantity: 3},
			{Material: "linen", Quantity: 5},
			{Material: "silk", Quantity: 2},
		},
	})
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		item := o.Items[rng.Intn(len(o.Items))]
		_, err := f.uc.SetItemProgress(ctx, item.ID, rng.Intn(7))
		require.NoError(t, err)

		got, err := f.uc.GetOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.DeriveStatus(got.Items), got.Status, "step %d", i)
	}
}

// An order without items derives to completed as soon as anything recomputes it.
func TestEmptyOrderBoundary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{OrderNumber: "EMPTY"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCreated, o.Status)

	res, err := f.uc.SetOrderProgress(ctx, o.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, res.Status)
}

func TestAddItemDoesNotRecompute(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "C-3",
		Items:       []dto.ItemInput{{Material: "cotton", Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = f.uc.SetItemProgress(ctx, o.Items[0].ID, 2)
	require.NoError(t, err)

	item, err := f.uc.AddItem(ctx, &dto.AddItemInput{OrderID: o.ID, Item: dto.ItemInput{Material: "wool", Quantity: 5, CompletedQuantity: 3}})
	require.NoError(t, err)
	assert.Zero(t, item.CompletedQuantity)
	assert.Equal(t, model.OrderStatusCompleted, f.storedStatus(t, o.ID))

	_, err = f.uc.AddItem(ctx, &dto.AddItemInput{OrderID: 999, Item: dto.ItemInput{Quantity: 1}})
	assert.True(t, apperror.IsNotFound(err))
}

func TestSetOrderProgressDistributes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "D-4",
		Items: []dto.ItemInput{
			{Material: "cotton", Quantity: 4},
			{Material: "wool", Quantity: 6},
		},
	})
	require.NoError(t, err)

	res, err := f.uc.SetOrderProgress(ctx, o.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, res.Status)

	got, err := f.uc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Items[0].CompletedQuantity)
	assert.Equal(t, 3, got.Items[1].CompletedQuantity)

	res, err = f.uc.SetOrderProgress(ctx, o.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, res.Status)
}

func TestReplaceOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "E-5",
		Items:       []dto.ItemInput{{Material: "cotton", Quantity: 4}},
	})
	require.NoError(t, err)

	res, err := f.uc.ReplaceOrder(ctx, &dto.ReplaceOrderInput{
		OrderID:     o.ID,
		OrderNumber: "E-5b",
		Items: []dto.ItemInput{
			{Material: "silk", Quantity: 2, CompletedQuantity: 1},
			{Material: "wool", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, res.Status)

	got, err := f.uc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "E-5b", got.OrderNumber)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "silk", got.Items[0].Material)
}

func TestSetOrderStatusOverride(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "F-6",
		Items:       []dto.ItemInput{{Material: "cotton", Quantity: 10}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.SetOrderStatus(ctx, o.ID, model.OrderStatusShipped))
	assert.Equal(t, model.OrderStatusShipped, f.storedStatus(t, o.ID))

	err = f.uc.SetOrderStatus(ctx, o.ID, model.OrderStatus("lost"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	err = f.uc.SetOrderStatus(ctx, 999, model.OrderStatusCompleted)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListOrders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{OrderNumber: "G-1", Items: []dto.ItemInput{{Quantity: 1}, {Quantity: 2}}})
	require.NoError(t, err)
	second, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{OrderNumber: "G-2", Items: []dto.ItemInput{{Quantity: 3}}})
	require.NoError(t, err)
	require.NoError(t, f.uc.SetOrderStatus(ctx, second.ID, model.OrderStatusInProgress))

	all, err := f.uc.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Len(t, all[1].Items, 2)

	status := model.OrderStatusCreated
	created, err := f.uc.ListOrders(ctx, &dto.OrderFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, first.ID, created[0].ID)

	bogus := model.OrderStatus("bogus")
	_, err = f.uc.ListOrders(ctx, &dto.OrderFilters{Status: &bogus})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: "H-8",
		Items:       []dto.ItemInput{{Quantity: 1}, {Quantity: 2}, {Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteOrder(ctx, o.ID))
	assert.Equal(t, 0, testutil.Count(t, f.gw, `SELECT count(*) FROM order_items WHERE order_id = ?`, o.ID))
	assert.Equal(t, 0, testutil.Count(t, f.gw, `SELECT count(*) FROM orders`))

	_, err = f.uc.GetOrder(ctx, o.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(f.uc.DeleteOrder(ctx, o.ID)))
}

func TestOrderValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, &dto.CreateOrderInput{OrderNumber: " "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.CreateOrder(ctx, &dto.CreateOrderInput{OrderNumber: "X", Items: []dto.ItemInput{{Quantity: -1}}})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.SetItemProgress(ctx, 1, -2)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.SetItemProgress(ctx, 12345, 1)
	assert.True(t, apperror.IsNotFound(err))
}
