// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"shopcat/internal/domain/product"
)

// PaginationQuery contains pagination query parameters.
// Missing values fall through to the domain defaults.
type PaginationQuery struct {
	Limit  *int `form:"limit"`
	Offset *int `form:"offset"`
}

// ToPagination converts query parameters into the domain pagination gate.
func (p *PaginationQuery) ToPagination() product.Pagination {
	return product.Pagination{Limit: p.Limit, Offset: p.Offset}
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
