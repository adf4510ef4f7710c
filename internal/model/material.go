package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Material struct {
	BaseModel
	Name         string            `db:"name" json:"name"`
	Size         string            `db:"size" json:"size"`
	Color        string            `db:"color" json:"color"`
	Quantity     decimal.Decimal   `db:"quantity" json:"quantity"`
	MaterialType string            `db:"material_type" json:"material_type"`
	ImageURL     string            `db:"image_url" json:"image_url"`
	SectionID    *int64            `db:"section_id" json:"section_id"`
	History      []InventoryRecord `db:"-" json:"history,omitempty"`
}

// InventoryRecord is one append-only row of the stock ledger.
type InventoryRecord struct {
	ID             int64           `db:"id" json:"id"`
	MaterialID     int64           `db:"material_id" json:"material_id"`
	QuantityChange decimal.Decimal `db:"quantity_change" json:"quantity_change"`
	UpdatedBy      *int64          `db:"updated_by" json:"updated_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type Section struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
