package auth

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
)

type UseCase interface {
	// Login fails with the same Unauthorized error for an unknown login and a
	// wrong password.
	Login(ctx context.Context, login, password string) (*model.User, error)
	Lookup(ctx context.Context, userID int64) (*model.User, error)
}
