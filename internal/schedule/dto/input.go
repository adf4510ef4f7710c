package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SetHoursInput struct {
	UserID   int64
	WorkDate time.Time
	Hours    decimal.Decimal
}

type UpdateHoursInput struct {
	ID    int64
	Hours decimal.Decimal
}
