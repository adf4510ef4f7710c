package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/auth"
	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory"
	"github.com/fekuna/omnipos-workshop-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("inventory", h.logger).
		On(http.MethodGet, h.ListMovements).
		On(http.MethodPut, h.AdjustInventory)
}

// AdjustRequest is accepted both here (material_id) and on the materials
// endpoint (id).
type AdjustRequest struct {
	ID             *int64           `json:"id"`
	MaterialID     *int64           `json:"material_id"`
	QuantityChange *decimal.Decimal `json:"quantity_change"`
	UpdatedBy      *int64           `json:"updated_by"`
}

type adjustResponse struct {
	Success  bool            `json:"success"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (h *InventoryHandler) AdjustInventory(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body AdjustRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}
	return h.Adjust(ctx, req, &body)
}

// Adjust runs a decoded adjustment request.
func (h *InventoryHandler) Adjust(ctx context.Context, req *dispatch.Request, body *AdjustRequest) (int, interface{}, error) {
	idField := body.MaterialID
	if idField == nil {
		idField = body.ID
	}
	materialID, err := dispatch.RequireID(idField, "material id")
	if err != nil {
		return 0, nil, err
	}
	if body.QuantityChange == nil {
		return 0, nil, apperror.Validation("quantity_change is required")
	}

	res, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		MaterialID:     materialID,
		QuantityChange: *body.QuantityChange,
		UpdatedBy:      auth.Actor(body.UpdatedBy, req),
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, adjustResponse{Success: true, Quantity: res.Quantity}, nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	materialID, err := req.QueryID("material_id")
	if err != nil {
		return 0, nil, err
	}
	filters := &dto.MovementFilters{MaterialID: materialID}
	if raw := req.QueryParam("page_size"); raw != "" {
		size, err := dispatch.ParseID(raw, "page_size")
		if err != nil {
			return 0, nil, err
		}
		filters.PageSize = int(size)
		filters.Page = 1
		if raw := req.QueryParam("page"); raw != "" {
			page, err := dispatch.ParseID(raw, "page")
			if err != nil {
				return 0, nil, err
			}
			filters.Page = int(page)
		}
	}

	records, err := h.uc.ListMovements(ctx, filters)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, records, nil
}
