package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/auth"
	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/order"
	"github.com/fekuna/omnipos-workshop-service/internal/order/dto"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("orders", h.logger).
		On(http.MethodGet, h.GetOrders).
		On(http.MethodPost, h.CreateOrder).
		On(http.MethodPut, h.UpdateOrder).
		On(http.MethodDelete, h.DeleteOrder)
}

type itemRequest struct {
	Material          string `json:"material"`
	Quantity          int    `json:"quantity"`
	Size              string `json:"size"`
	Color             string `json:"color"`
	CompletedQuantity int    `json:"completed_quantity"`
}

func (r itemRequest) input() dto.ItemInput {
	return dto.ItemInput{
		Material:          r.Material,
		Quantity:          r.Quantity,
		Size:              r.Size,
		Color:             r.Color,
		CompletedQuantity: r.CompletedQuantity,
	}
}

// orderRequest covers every POST and PUT shape; the fields present decide
// which operation runs.
type orderRequest struct {
	ID                *int64         `json:"id"`
	OrderID           *int64         `json:"order_id"`
	ItemID            *int64         `json:"item_id"`
	OrderNumber       string         `json:"order_number"`
	Items             *[]itemRequest `json:"items"`
	CreatedBy         *int64         `json:"created_by"`
	CompletedQuantity *int           `json:"completed_quantity"`
	Status            *string        `json:"status"`

	itemRequest
}

func inputs(items []itemRequest) []dto.ItemInput {
	out := make([]dto.ItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, item.input())
	}
	return out
}

type progressResponse struct {
	Success bool              `json:"success"`
	OrderID int64             `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
}

func (h *OrderHandler) GetOrders(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	if raw := req.QueryParam("id"); raw != "" {
		id, err := dispatch.ParseID(raw, "id")
		if err != nil {
			return 0, nil, err
		}
		o, err := h.uc.GetOrder(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, o, nil
	}

	filters := &dto.OrderFilters{}
	if raw := req.QueryParam("status"); raw != "" {
		status := model.OrderStatus(raw)
		filters.Status = &status
	}
	orders, err := h.uc.ListOrders(ctx, filters)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, orders, nil
}

func (h *OrderHandler) CreateOrder(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body orderRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	if body.OrderID != nil {
		orderID, err := dispatch.RequireID(body.OrderID, "order_id")
		if err != nil {
			return 0, nil, err
		}
		item, err := h.uc.AddItem(ctx, &dto.AddItemInput{OrderID: orderID, Item: body.itemRequest.input()})
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dispatch.Created(item.ID), nil
	}

	var items []dto.ItemInput
	if body.Items != nil {
		items = inputs(*body.Items)
	}
	o, err := h.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		OrderNumber: body.OrderNumber,
		Items:       items,
		CreatedBy:   auth.Actor(body.CreatedBy, req),
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, dispatch.Created(o.ID), nil
}

func (h *OrderHandler) UpdateOrder(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body orderRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	if body.ItemID != nil {
		itemID, err := dispatch.RequireID(body.ItemID, "item_id")
		if err != nil {
			return 0, nil, err
		}
		if body.CompletedQuantity == nil {
			return 0, nil, apperror.Validation("completed_quantity is required")
		}
		return progress(h.uc.SetItemProgress(ctx, itemID, *body.CompletedQuantity))
	}

	id, err := dispatch.RequireID(body.ID, "id")
	if err != nil {
		return 0, nil, err
	}

	switch {
	case body.Items != nil:
		return progress(h.uc.ReplaceOrder(ctx, &dto.ReplaceOrderInput{
			OrderID:     id,
			OrderNumber: body.OrderNumber,
			Items:       inputs(*body.Items),
		}))
	case body.CompletedQuantity != nil:
		return progress(h.uc.SetOrderProgress(ctx, id, *body.CompletedQuantity))
	case body.Status != nil:
		if err := h.uc.SetOrderStatus(ctx, id, model.OrderStatus(*body.Status)); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dispatch.OK(), nil
	}
	return 0, nil, apperror.Validation("nothing to update")
}

func progress(res *dto.ProgressResult, err error) (int, interface{}, error) {
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, progressResponse{Success: true, OrderID: res.OrderID, Status: res.Status}, nil
}

func (h *OrderHandler) DeleteOrder(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body orderRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	id, err := req.ResolveID(body.ID, "id")
	if err != nil {
		return 0, nil, err
	}

	if err := h.uc.DeleteOrder(ctx, id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, dispatch.OK(), nil
}
