package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/events"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/metrics"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/order"
	"github.com/fekuna/omnipos-workshop-service/internal/order/dto"
	"go.uber.org/zap"
)

const (
	sourceDerived  = "derived"
	sourceOverride = "override"
)

type orderUseCase struct {
	repo      order.Repository
	tx        database.Transactor
	publisher events.Publisher
	logger    logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, tx database.Transactor, publisher events.Publisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
		logger:    log,
	}
}

// statusChange is collected inside a transaction and published after commit.
type statusChange struct {
	orderID int64
	from    model.OrderStatus
	to      model.OrderStatus
	source  string
}

func validateItem(item dto.ItemInput) error {
	if item.Quantity < 0 {
		return apperror.Validation("item quantity must not be negative")
	}
	if item.CompletedQuantity < 0 {
		return apperror.Validation("completed quantity must not be negative")
	}
	return nil
}

func newItem(orderID int64, in dto.ItemInput) *model.OrderItem {
	return &model.OrderItem{
		OrderID:           orderID,
		Material:          in.Material,
		Quantity:          in.Quantity,
		Size:              in.Size,
		Color:             in.Color,
		CompletedQuantity: in.CompletedQuantity,
	}
}

// CreateOrder stores the order as created regardless of its items; progress
// only moves through the progress operations.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	orderNumber := strings.TrimSpace(input.OrderNumber)
	if orderNumber == "" {
		return nil, apperror.Validation("order_number is required")
	}
	for _, item := range input.Items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	o := &model.Order{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		OrderNumber: orderNumber,
		Status:      model.OrderStatusCreated,
		CreatedBy:   input.CreatedBy,
		Items:       make([]model.OrderItem, 0, len(input.Items)),
	}

	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, o); err != nil {
			return err
		}
		for _, in := range input.Items {
			in.CompletedQuantity = 0
			item := newItem(o.ID, in)
			if err := uc.repo.AddItem(ctx, item); err != nil {
				return err
			}
			o.Items = append(o.Items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, events.OrderCreated, o.ID, map[string]interface{}{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"items":        len(o.Items),
		"created_by":   o.CreatedBy,
	})
	return o, nil
}

// AddItem appends an item without recomputing the order's status.
func (uc *orderUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*model.OrderItem, error) {
	if input.OrderID <= 0 {
		return nil, apperror.Validation("order_id is required")
	}
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	in := input.Item
	in.CompletedQuantity = 0
	item := newItem(input.OrderID, in)
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.repo.LockByID(ctx, input.OrderID); err != nil {
			return err
		}
		return uc.repo.AddItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var o *model.Order
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		o, err = uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		o.Items, err = uc.repo.ListItems(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	if filters != nil && filters.Status != nil && !filters.Status.Valid() {
		return nil, apperror.Validation("unknown status %q", *filters.Status)
	}

	var orders []model.Order
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		orders, err = uc.repo.FindAll(ctx, filters)
		if err != nil || len(orders) == 0 {
			return err
		}

		ids := make([]int64, len(orders))
		byOrder := make(map[int64]int, len(orders))
		for i := range orders {
			ids[i] = orders[i].ID
			byOrder[orders[i].ID] = i
			orders[i].Items = []model.OrderItem{}
		}
		items, err := uc.repo.ListItems(ctx, ids...)
		if err != nil {
			return err
		}
		for _, item := range items {
			if i, ok := byOrder[item.OrderID]; ok {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder removes the items before the order so no item outlives it.
func (uc *orderUseCase) DeleteOrder(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.Validation("id is required")
	}
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.repo.LockByID(ctx, id); err != nil {
			return err
		}
		if _, err := uc.repo.DeleteItems(ctx, id); err != nil {
			return err
		}
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, events.OrderDeleted, id, map[string]interface{}{"order_id": id})
	return nil
}

func (uc *orderUseCase) SetItemProgress(ctx context.Context, itemID int64, completed int) (*dto.ProgressResult, error) {
	if itemID <= 0 {
		return nil, apperror.Validation("item_id is required")
	}
	if completed < 0 {
		return nil, apperror.Validation("completed quantity must not be negative")
	}

	var change statusChange
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		item, err := uc.repo.FindItem(ctx, itemID)
		if err != nil {
			return err
		}
		current, err := uc.repo.LockByID(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if err := uc.repo.UpdateItemProgress(ctx, itemID, completed); err != nil {
			return err
		}
		change, err = uc.recompute(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.statusChanged(ctx, change)
	return &dto.ProgressResult{OrderID: change.orderID, Status: change.to}, nil
}

func (uc *orderUseCase) SetOrderProgress(ctx context.Context, orderID int64, completedTotal int) (*dto.ProgressResult, error) {
	if orderID <= 0 {
		return nil, apperror.Validation("id is required")
	}
	if completedTotal < 0 {
		return nil, apperror.Validation("completed quantity must not be negative")
	}

	var change statusChange
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.repo.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		items, err := uc.repo.ListItems(ctx, orderID)
		if err != nil {
			return err
		}
		order.DistributeProgress(items, completedTotal)
		for _, item := range items {
			if err := uc.repo.UpdateItemProgress(ctx, item.ID, item.CompletedQuantity); err != nil {
				return err
			}
		}
		change, err = uc.recompute(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.statusChanged(ctx, change)
	return &dto.ProgressResult{OrderID: orderID, Status: change.to}, nil
}

func (uc *orderUseCase) ReplaceOrder(ctx context.Context, input *dto.ReplaceOrderInput) (*dto.ProgressResult, error) {
	if input.OrderID <= 0 {
		return nil, apperror.Validation("id is required")
	}
	for _, item := range input.Items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
	}

	var change statusChange
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.repo.LockByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if orderNumber := strings.TrimSpace(input.OrderNumber); orderNumber != "" {
			if err := uc.repo.UpdateOrderNumber(ctx, input.OrderID, orderNumber, time.Now().UTC()); err != nil {
				return err
			}
		}
		if _, err := uc.repo.DeleteItems(ctx, input.OrderID); err != nil {
			return err
		}
		for _, in := range input.Items {
			if err := uc.repo.AddItem(ctx, newItem(input.OrderID, in)); err != nil {
				return err
			}
		}
		change, err = uc.recompute(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.statusChanged(ctx, change)
	return &dto.ProgressResult{OrderID: input.OrderID, Status: change.to}, nil
}

func (uc *orderUseCase) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if orderID <= 0 {
		return apperror.Validation("id is required")
	}
	if !status.Valid() {
		return apperror.Validation("unknown status %q", status)
	}

	var change statusChange
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.repo.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		change = statusChange{orderID: orderID, from: current.Status, to: status, source: sourceOverride}
		return uc.repo.UpdateStatus(ctx, orderID, status, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	uc.statusChanged(ctx, change)
	return nil
}

// recompute reads the order's items inside the caller's transaction, derives
// the status and persists it.
func (uc *orderUseCase) recompute(ctx context.Context, current *model.Order) (statusChange, error) {
	items, err := uc.repo.ListItems(ctx, current.ID)
	if err != nil {
		return statusChange{}, err
	}
	status := order.DeriveStatus(items)
	if err := uc.repo.UpdateStatus(ctx, current.ID, status, time.Now().UTC()); err != nil {
		return statusChange{}, err
	}
	return statusChange{orderID: current.ID, from: current.Status, to: status, source: sourceDerived}, nil
}

func (uc *orderUseCase) statusChanged(ctx context.Context, change statusChange) {
	if change.from == change.to {
		return
	}
	metrics.OrderStatusTransitions.WithLabelValues(change.source, string(change.from), string(change.to)).Inc()
	uc.publish(ctx, events.OrderStatusChanged, change.orderID, map[string]interface{}{
		"order_id": change.orderID,
		"from":     change.from,
		"to":       change.to,
		"source":   change.source,
	})
}

func (uc *orderUseCase) publish(ctx context.Context, eventType string, orderID int64, payload interface{}) {
	ev, err := events.New(eventType, orderID, payload)
	if err == nil {
		err = uc.publisher.Publish(ctx, ev)
	}
	if err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("event_type", eventType),
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
}
