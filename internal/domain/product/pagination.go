package product

import (
	"shopcat/internal/core/apperror"
)

// DefaultLimit is the page size used when the caller supplies none.
const DefaultLimit = 10

// Pagination normalizes caller-supplied page parameters into bounded,
// safe query limits. Nil fields take defaults; negative values are
// rejected before any query is issued.
type Pagination struct {
	Limit  *int
	Offset *int
}

// Normalize resolves defaults and validates the parameters.
// No upper bound is enforced here; a hard ceiling is left to deployment
// configuration.
func (p Pagination) Normalize() (limit, offset int, err error) {
	limit, offset = DefaultLimit, 0

	if p.Limit != nil {
		if *p.Limit < 0 {
			return 0, 0, apperror.NewValidation("limit cannot be negative").
				WithDetail("field", "limit").
				WithDetail("value", *p.Limit)
		}
		limit = *p.Limit
	}

	if p.Offset != nil {
		if *p.Offset < 0 {
			return 0, 0, apperror.NewValidation("offset cannot be negative").
				WithDetail("field", "offset").
				WithDetail("value", *p.Offset)
		}
		offset = *p.Offset
	}

	return limit, offset, nil
}
