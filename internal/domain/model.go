package domain

import (
	"time"

	"github.com/simp-lee/pagination"
)

// Timestamps is the common creation/update time pair embedded in all
// persisted models. The JSON names match what the admin console's record
// maps carry through untouched.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageRequest holds pagination, sorting, and filtering parameters for list queries.
// A non-positive PageSize means "no limit": the whole collection is returned in
// one page. The admin console loads full collections and paginates client-side,
// so unlimited is the default for its list calls.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     string
	Filter   map[string]string
}

// PageResult is the paginated list result shape shared by all repositories.
type PageResult[T any] = pagination.Pagination[T]
