package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/user"
	"github.com/fekuna/omnipos-workshop-service/internal/user/dto"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("users", h.logger).
		On(http.MethodGet, h.GetUsers).
		On(http.MethodPost, h.CreateUser).
		On(http.MethodDelete, h.DeleteUser)
}

type userRequest struct {
	ID       *int64 `json:"id"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// GetUsers lists every user, or one when ?id is given.
func (h *UserHandler) GetUsers(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	if raw := req.QueryParam("id"); raw != "" {
		id, err := dispatch.ParseID(raw, "id")
		if err != nil {
			return 0, nil, err
		}
		u, err := h.uc.GetUser(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, u, nil
	}

	users, err := h.uc.ListUsers(ctx)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, users, nil
}

func (h *UserHandler) CreateUser(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body userRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	u, err := h.uc.CreateUser(ctx, &dto.CreateUserInput{
		Login:    body.Login,
		Password: body.Password,
		Role:     body.Role,
		FullName: body.FullName,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, dispatch.Created(u.ID), nil
}

func (h *UserHandler) DeleteUser(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body userRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	id, err := req.ResolveID(body.ID, "id")
	if err != nil {
		return 0, nil, err
	}

	if err := h.uc.DeleteUser(ctx, id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, dispatch.OK(), nil
}
