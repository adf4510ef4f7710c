package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/section"
	"github.com/fekuna/omnipos-workshop-service/internal/section/dto"
)

type SectionHandler struct {
	uc     section.UseCase
	logger logger.ZapLogger
}

func NewSectionHandler(uc section.UseCase, log logger.ZapLogger) *SectionHandler {
	return &SectionHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SectionHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("sections", h.logger).
		On(http.MethodGet, h.ListSections).
		On(http.MethodPost, h.CreateSection).
		On(http.MethodDelete, h.DeleteSection)
}

type sectionRequest struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *SectionHandler) ListSections(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	sections, err := h.uc.ListSections(ctx)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, sections, nil
}

func (h *SectionHandler) CreateSection(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body sectionRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	s, err := h.uc.CreateSection(ctx, &dto.CreateSectionInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, dispatch.Created(s.ID), nil
}

// DeleteSection accepts the id in the body, as the admin panel sends it, or in the query.
func (h *SectionHandler) DeleteSection(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body sectionRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	id, err := req.ResolveID(body.ID, "id")
	if err != nil {
		return 0, nil, err
	}

	if err := h.uc.DeleteSection(ctx, id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, dispatch.OK(), nil
}
