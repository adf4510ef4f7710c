package order

import "github.com/fekuna/omnipos-workshop-service/internal/model"

// DeriveStatus computes an order's status from its items. An order with no
// items has a target of zero and therefore derives to completed.
func DeriveStatus(items []model.OrderItem) model.OrderStatus {
	var completed, target int
	for _, item := range items {
		completed += item.CompletedQuantity
		target += item.Quantity
	}

	switch {
	case completed >= target:
		return model.OrderStatusCompleted
	case completed > 0:
		return model.OrderStatusInProgress
	default:
		return model.OrderStatusCreated
	}
}

// DistributeProgress assigns an order-level completed total to items in slice
// order, filling each up to its target. Whatever exceeds every target lands on
// the last item.
func DistributeProgress(items []model.OrderItem, total int) {
	remaining := max(total, 0)
	for i := range items {
		fill := min(max(items[i].Quantity, 0), remaining)
		items[i].CompletedQuantity = fill
		remaining -= fill
	}
	if remaining > 0 && len(items) > 0 {
		items[len(items)-1].CompletedQuantity += remaining
	}
}
