package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Quantities and hours go out as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type BaseModel struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
