package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/auth"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/user"
	"go.uber.org/zap"
)

const invalidCredentials = "invalid login or password"

type authUseCase struct {
	users    user.Repository
	verifier auth.CredentialVerifier
	logger   logger.ZapLogger
}

func NewAuthUseCase(users user.Repository, verifier auth.CredentialVerifier, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		users:    users,
		verifier: verifier,
		logger:   log,
	}
}

func (uc *authUseCase) Login(ctx context.Context, login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	u, err := uc.users.FindByLogin(ctx, login)
	if err != nil {
		if apperror.IsNotFound(err) {
			uc.logger.Debug("login for unknown user")
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		return nil, err
	}
	if !uc.verifier.Verify(u.Password, password) {
		uc.logger.Debug("login with wrong password", zap.Int64("user_id", u.ID))
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	return u, nil
}

func (uc *authUseCase) Lookup(ctx context.Context, userID int64) (*model.User, error) {
	return uc.users.FindByID(ctx, userID)
}
