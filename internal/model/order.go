package model

type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "created"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	// OrderStatusShipped is only reachable through a manual override.
	OrderStatusShipped OrderStatus = "shipped"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusInProgress, OrderStatusCompleted, OrderStatusShipped:
		return true
	}
	return false
}

type Order struct {
	BaseModel
	OrderNumber string      `db:"order_number" json:"order_number"`
	Status      OrderStatus `db:"status" json:"status"`
	CreatedBy   *int64      `db:"created_by" json:"created_by"`
	Items       []OrderItem `db:"-" json:"items"`
}

type OrderItem struct {
	ID                int64  `db:"id" json:"id"`
	OrderID           int64  `db:"order_id" json:"order_id"`
	Material          string `db:"material" json:"material"`
	Quantity          int    `db:"quantity" json:"quantity"`
	Size              string `db:"size" json:"size"`
	Color             string `db:"color" json:"color"`
	CompletedQuantity int    `db:"completed_quantity" json:"completed_quantity"`
}
