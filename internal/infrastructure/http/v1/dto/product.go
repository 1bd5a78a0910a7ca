package dto

import (
	"github.com/shopspring/decimal"

	"shopcat/internal/domain/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Slug        *string         `json:"slug"`
	Stock       *int            `json:"stock"`
	Sizes       []string        `json:"sizes"`
	Gender      string          `json:"gender" binding:"required,oneof=men women kid unisex"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images"`
}

// ToInput converts the request into the domain creation payload.
func (r *CreateProductRequest) ToInput() product.CreateInput {
	return product.CreateInput{
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Slug:        r.Slug,
		Stock:       r.Stock,
		Sizes:       r.Sizes,
		Gender:      r.Gender,
		Tags:        r.Tags,
		Images:      r.Images,
	}
}

// UpdateProductRequest is the request body for a partial product update.
// Absent fields are left untouched; a present images list (even empty)
// replaces the entire image set.
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Slug        *string          `json:"slug"`
	Stock       *int             `json:"stock"`
	Sizes       *[]string        `json:"sizes"`
	Gender      *string          `json:"gender" binding:"omitempty,oneof=men women kid unisex"`
	Tags        *[]string        `json:"tags"`
	Images      *[]string        `json:"images"`
}

// ToInput converts the request into the domain update payload.
func (r *UpdateProductRequest) ToInput() product.UpdateInput {
	return product.UpdateInput{
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Slug:        r.Slug,
		Stock:       r.Stock,
		Sizes:       r.Sizes,
		Gender:      r.Gender,
		Tags:        r.Tags,
		Images:      r.Images,
	}
}

// --- Response DTOs ---

// ProductResponse is the flattened external representation of a product.
type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	Slug        string          `json:"slug"`
	Stock       int             `json:"stock"`
	Sizes       []string        `json:"sizes"`
	Gender      string          `json:"gender"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images"`
}

// FromPlain creates ProductResponse from the flattened domain form.
func FromPlain(p *product.Plain) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Tags:        p.Tags,
		Images:      p.Images,
	}
}

// FromPlainList maps a list of flattened products.
func FromPlainList(plains []*product.Plain) []ProductResponse {
	out := make([]ProductResponse, len(plains))
	for i, p := range plains {
		out[i] = FromPlain(p)
	}
	return out
}
