package dto

import "github.com/fekuna/omnipos-workshop-service/internal/model"

type OrderFilters struct {
	Status *model.OrderStatus
}

type ProgressResult struct {
	OrderID int64             `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
}
