package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/auth"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/user"
	"github.com/fekuna/omnipos-workshop-service/internal/user/dto"
	"go.uber.org/zap"
)

type userUseCase struct {
	repo     user.Repository
	tx       database.Transactor
	verifier auth.CredentialVerifier
	logger   logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tx database.Transactor, verifier auth.CredentialVerifier, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:     repo,
		tx:       tx,
		verifier: verifier,
		logger:   log,
	}
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, apperror.Validation("login and password are required")
	}
	role := model.Role(input.Role)
	if role == "" {
		role = model.RoleWorker
	}
	if !role.Valid() {
		return nil, apperror.Validation("unknown role %q", input.Role)
	}

	stored, err := uc.verifier.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Login:     login,
		Password:  stored,
		Role:      role,
		FullName:  strings.TrimSpace(input.FullName),
		CreatedAt: time.Now().UTC(),
	}

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		unique, err := uc.repo.IsLoginUnique(ctx, login)
		if err != nil {
			return err
		}
		if !unique {
			return apperror.Validation("login %q already exists", login)
		}
		return uc.repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user created", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.Validation("id is required")
	}
	return uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
}
