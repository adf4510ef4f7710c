package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleWorker  Role = "worker"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleWorker || r == RoleManager || r == RoleAdmin
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Login     string    `db:"login" json:"login"`
	Password  string    `db:"password" json:"-"`
	Role      Role      `db:"role" json:"role"`
	FullName  string    `db:"full_name" json:"full_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ScheduleEntry struct {
	BaseModel
	UserID   int64           `db:"user_id"`
	WorkDate time.Time       `db:"work_date"`
	Hours    decimal.Decimal `db:"hours"`
}

// ScheduleRow is a schedule entry joined with its user.
type ScheduleRow struct {
	ID       int64           `db:"id"`
	UserID   int64           `db:"user_id"`
	WorkDate time.Time       `db:"work_date"`
	Hours    decimal.Decimal `db:"hours"`
	FullName string          `db:"full_name"`
	Login    string          `db:"login"`
}
