package dto

type MovementFilters struct {
	MaterialID int64
	Page       int
	PageSize   int
}
