package dto

import (
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type EntryView struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	WorkDate string          `json:"work_date"`
	Hours    decimal.Decimal `json:"hours"`
	FullName string          `json:"full_name"`
	Login    string          `json:"login"`
}

func NewEntryView(row model.ScheduleRow) EntryView {
	return EntryView{
		ID:       row.ID,
		UserID:   row.UserID,
		WorkDate: row.WorkDate.Format(DateLayout),
		Hours:    row.Hours,
		FullName: row.FullName,
		Login:    row.Login,
	}
}

type UserView struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Login    string `json:"login"`
}

// MonthView is the schedule grid for one month plus everyone who can be scheduled.
type MonthView struct {
	Year     int         `json:"year"`
	Month    time.Month  `json:"month"`
	Schedule []EntryView `json:"schedule"`
	Users    []UserView  `json:"users"`
}
