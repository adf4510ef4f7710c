package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	invhandler "github.com/fekuna/omnipos-workshop-service/internal/inventory/handler"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/material"
	"github.com/fekuna/omnipos-workshop-service/internal/material/dto"
	"github.com/shopspring/decimal"
)

type MaterialHandler struct {
	uc     material.UseCase
	stock  *invhandler.InventoryHandler
	logger logger.ZapLogger
}

func NewMaterialHandler(uc material.UseCase, stock *invhandler.InventoryHandler, log logger.ZapLogger) *MaterialHandler {
	return &MaterialHandler{
		uc:     uc,
		stock:  stock,
		logger: log,
	}
}

func (h *MaterialHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("materials", h.logger).
		On(http.MethodGet, h.GetMaterials).
		On(http.MethodPost, h.CreateMaterial).
		On(http.MethodPut, h.UpdateMaterial).
		On(http.MethodDelete, h.DeleteMaterial)
}

type materialRequest struct {
	ID             *int64           `json:"id"`
	Name           string           `json:"name"`
	Size           string           `json:"size"`
	Color          string           `json:"color"`
	Quantity       *decimal.Decimal `json:"quantity"`
	MaterialType   string           `json:"material_type"`
	ImageURL       string           `json:"image_url"`
	SectionID      *int64           `json:"section_id"`
	QuantityChange *decimal.Decimal `json:"quantity_change"`
	UpdatedBy      *int64           `json:"updated_by"`
}

func (r *materialRequest) quantity() decimal.Decimal {
	if r.Quantity == nil {
		return decimal.Zero
	}
	return *r.Quantity
}

func (h *MaterialHandler) GetMaterials(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	if raw := req.QueryParam("id"); raw != "" {
		id, err := dispatch.ParseID(raw, "id")
		if err != nil {
			return 0, nil, err
		}
		m, err := h.uc.GetMaterial(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, m, nil
	}

	filters := &dto.MaterialFilters{}
	if raw := req.QueryParam("section_id"); raw != "" {
		sectionID, err := dispatch.ParseID(raw, "section_id")
		if err != nil {
			return 0, nil, err
		}
		filters.SectionID = &sectionID
	}

	materials, err := h.uc.ListMaterials(ctx, filters)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, materials, nil
}

func (h *MaterialHandler) CreateMaterial(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body materialRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	m, err := h.uc.CreateMaterial(ctx, &dto.CreateMaterialInput{
		Name:         body.Name,
		Size:         body.Size,
		Color:        body.Color,
		Quantity:     body.quantity(),
		MaterialType: body.MaterialType,
		ImageURL:     body.ImageURL,
		SectionID:    body.SectionID,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, dispatch.Created(m.ID), nil
}

// UpdateMaterial routes a quantity_change payload to the stock ledger and
// treats anything else as a full replace.
func (h *MaterialHandler) UpdateMaterial(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body materialRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	if body.QuantityChange != nil {
		return h.stock.Adjust(ctx, req, &invhandler.AdjustRequest{
			ID:             body.ID,
			QuantityChange: body.QuantityChange,
			UpdatedBy:      body.UpdatedBy,
		})
	}

	id, err := dispatch.RequireID(body.ID, "id")
	if err != nil {
		return 0, nil, err
	}
	_, err = h.uc.ReplaceMaterial(ctx, &dto.ReplaceMaterialInput{
		ID:           id,
		Name:         body.Name,
		Size:         body.Size,
		Color:        body.Color,
		Quantity:     body.quantity(),
		MaterialType: body.MaterialType,
		ImageURL:     body.ImageURL,
		SectionID:    body.SectionID,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, dispatch.OK(), nil
}

func (h *MaterialHandler) DeleteMaterial(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	id, err := req.QueryID("id")
	if err != nil {
		return 0, nil, err
	}
	if err := h.uc.DeleteMaterial(ctx, id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, dispatch.OK(), nil
}
