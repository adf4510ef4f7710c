package dto

// MaterialFilters doubles as the list cache key, so every field is serialised.
type MaterialFilters struct {
	SectionID *int64 `json:"section_id,omitempty"`
}
