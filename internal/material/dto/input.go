package dto

import "github.com/shopspring/decimal"

type CreateMaterialInput struct {
	Name         string
	Size         string
	Color        string
	Quantity     decimal.Decimal
	MaterialType string
	ImageURL     string
	SectionID    *int64
}

// ReplaceMaterialInput overwrites every editable column. Quantity is written
// as-is and does not touch the ledger.
type ReplaceMaterialInput struct {
	ID           int64
	Name         string
	Size         string
	Color        string
	Quantity     decimal.Decimal
	MaterialType string
	ImageURL     string
	SectionID    *int64
}
