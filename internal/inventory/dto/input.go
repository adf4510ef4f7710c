package dto

import "github.com/shopspring/decimal"

type AdjustStockInput struct {
	MaterialID     int64
	QuantityChange decimal.Decimal // positive = replenishment, negative = consumption
	UpdatedBy      *int64
}

type AdjustStockResult struct {
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}
