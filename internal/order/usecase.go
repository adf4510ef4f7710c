package order

import (
	"context"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	AddItem(ctx context.Context, input *dto.AddItemInput) (*model.OrderItem, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	// Progress updates recompute and persist the derived status.
	SetItemProgress(ctx context.Context, itemID int64, completed int) (*dto.ProgressResult, error)
	SetOrderProgress(ctx context.Context, orderID int64, completedTotal int) (*dto.ProgressResult, error)
	ReplaceOrder(ctx context.Context, input *dto.ReplaceOrderInput) (*dto.ProgressResult, error)

	// SetOrderStatus is the manual override; it bypasses derivation.
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
