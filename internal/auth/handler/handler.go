package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/auth"
	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AuthHandler) Function() *dispatch.Function {
	return dispatch.NewFunction("auth", h.logger).
		On(http.MethodGet, h.GetUser).
		On(http.MethodPost, h.Login)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userView struct {
	ID       int64      `json:"id"`
	Login    string     `json:"login"`
	Role     model.Role `json:"role"`
	FullName string     `json:"full_name"`
}

func newUserView(u *model.User) userView {
	return userView{ID: u.ID, Login: u.Login, Role: u.Role, FullName: u.FullName}
}

type loginResponse struct {
	Success bool     `json:"success"`
	User    userView `json:"user"`
}

func (h *AuthHandler) Login(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	var body loginRequest
	if err := req.Decode(&body); err != nil {
		return 0, nil, err
	}

	u, err := h.uc.Login(ctx, body.Login, body.Password)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, loginResponse{Success: true, User: newUserView(u)}, nil
}

func (h *AuthHandler) GetUser(ctx context.Context, req *dispatch.Request) (int, interface{}, error) {
	userID, err := req.QueryID("user_id")
	if err != nil {
		return 0, nil, err
	}
	u, err := h.uc.Lookup(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, newUserView(u), nil
}
