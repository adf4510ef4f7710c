package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/order/dto"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	// LockByID reads the order row and holds it for the rest of the transaction.
	LockByID(ctx context.Context, id int64) (*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, at time.Time) error
	UpdateOrderNumber(ctx context.Context, id int64, orderNumber string, at time.Time) error
	Delete(ctx context.Context, id int64) error

	// Items
	AddItem(ctx context.Context, item *model.OrderItem) error
	FindItem(ctx context.Context, itemID int64) (*model.OrderItem, error)
	ListItems(ctx context.Context, orderIDs ...int64) ([]model.OrderItem, error)
	UpdateItemProgress(ctx context.Context, itemID int64, completed int) error
	DeleteItems(ctx context.Context, orderID int64) (int64, error)
}
