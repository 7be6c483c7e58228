package athlete

import "github.com/google/uuid"

// Filter defines parameters for searching and paginating athletes.
type Filter struct {
	// Search performs ILIKE '%...%' on last_name, full_name and lookup_key.
	// nil or empty string means no text filter.
	Search *string

	// ClubID filters athletes linked to the given club.
	ClubID *uuid.UUID

	// Gender filters by gender code ("F", "M", "P").
	Gender *string

	// BirthYearFrom / BirthYearTo bound the birth year (inclusive).
	// Zero means unbounded on that side.
	BirthYearFrom int
	BirthYearTo   int

	// SortBy determines the sort column: "name", "birth_date".
	// Default: "name".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "ASC".
	SortOrder string

	// Limit is the maximum number of athletes to return. Default: 50, max: 500.
	Limit int

	// Offset is the number of athletes to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 500

	sortByName      = "name"
	sortByBirthDate = "birth_date"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	switch f.SortBy {
	case sortByName, sortByBirthDate:
		// valid
	default:
		f.SortBy = sortByName
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderASC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}

// sortColumn returns the SQL column name for the current SortBy value.
func (f *Filter) sortColumn() string {
	if f.SortBy == sortByBirthDate {
		return "birth_date"
	}
	return "last_name"
}
