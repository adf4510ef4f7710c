package dto

type ItemInput struct {
	Material          string
	Quantity          int
	Size              string
	Color             string
	CompletedQuantity int
}

type CreateOrderInput struct {
	OrderNumber string
	Items       []ItemInput
	CreatedBy   *int64
}

type AddItemInput struct {
	OrderID int64
	Item    ItemInput
}

// ReplaceOrderInput swaps the whole item set. An empty OrderNumber keeps the
// current one.
type ReplaceOrderInput struct {
	OrderID     int64
	OrderNumber string
	Items       []ItemInput
}
