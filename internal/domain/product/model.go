// Package product provides the product catalog aggregate: a product together
// with its exclusively owned, ordered image collection.
package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"shopcat/internal/core/apperror"
	"shopcat/internal/core/id"
)

// Gender tags accepted for a product.
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderKid    = "kid"
	GenderUnisex = "unisex"
)

// Product represents one catalog item.
// Images are loaded eagerly by the repository and are never addressable
// outside their owning product.
type Product struct {
	// ID is the primary key (UUIDv7), assigned at creation and never reassigned
	ID id.ID `db:"id" json:"id"`

	// Title is the display title (unique among products)
	Title string `db:"title" json:"title"`

	// Price is the unit price
	Price decimal.Decimal `db:"price" json:"price"`

	// Description is an optional long-form description
	Description *string `db:"description" json:"description,omitempty"`

	// Slug is the URL-safe secondary unique key, derived from title when not supplied
	Slug string `db:"slug" json:"slug"`

	// Stock is the available quantity
	Stock int `db:"stock" json:"stock"`

	// Sizes holds size tags (S, M, L, ...)
	Sizes []string `db:"sizes" json:"sizes"`

	// Gender is one of the gender tags above
	Gender string `db:"gender" json:"gender"`

	// Tags holds free-form tags
	Tags []string `db:"tags" json:"tags"`

	// Images is the ordered owned image collection (separate table, not a column)
	Images []Image `db:"-" json:"images"`
}

// Image represents one image reference owned by exactly one product.
type Image struct {
	ID        id.ID  `db:"id" json:"id"`
	URL       string `db:"url" json:"url"`
	ProductID id.ID  `db:"product_id" json:"-"`
}

// Plain is the flattened external representation of a product:
// images as reference strings instead of nested records.
type Plain struct {
	ID          id.ID           `json:"id"`
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

// Flatten returns the plain representation, preserving image order.
func (p *Product) Flatten() *Plain {
	images := make([]string, len(p.Images))
	for i, img := range p.Images {
		images[i] = img.URL
	}
	return &Plain{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Tags:        p.Tags,
		Images:      images,
	}
}

// SetImages replaces the owned image collection with freshly created
// image entities for the given references, preserving order.
func (p *Product) SetImages(urls []string) {
	images := make([]Image, len(urls))
	for i, url := range urls {
		images[i] = Image{ID: id.New(), URL: url, ProductID: p.ID}
	}
	p.Images = images
}

// Validate checks entity invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}

	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}

	if !isValidGender(p.Gender) {
		return apperror.NewValidation("invalid gender tag").
			WithDetail("field", "gender").
			WithDetail("value", p.Gender)
	}

	// No duplicate references within a single image set
	seen := make(map[string]struct{}, len(p.Images))
	for _, img := range p.Images {
		if _, ok := seen[img.URL]; ok {
			return apperror.NewValidation("duplicate image reference").
				WithDetail("field", "images").
				WithDetail("value", img.URL)
		}
		seen[img.URL] = struct{}{}
	}

	return nil
}

// CreateInput carries the payload for creating a product.
type CreateInput struct {
	Title       string
	Price       decimal.Decimal
	Description *string
	Slug        *string
	Stock       *int
	Sizes       []string
	Gender      string
	Tags        []string
	Images      []string
}

// New builds a product entity from the creation payload.
// The slug is derived from the title when absent; a supplied slug is
// normalized the same way.
func New(in CreateInput) *Product {
	p := &Product{
		ID:          id.New(),
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Gender:      in.Gender,
		Sizes:       in.Sizes,
		Tags:        in.Tags,
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}

	if in.Slug != nil && *in.Slug != "" {
		p.Slug = Slugify(*in.Slug)
	} else {
		p.Slug = Slugify(in.Title)
	}

	p.SetImages(in.Images)
	return p
}

// UpdateInput carries a partial update payload. Nil fields are left untouched.
// A non-nil Images pointer (even to an empty list) replaces the entire image set.
type UpdateInput struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
	Slug        *string
	Stock       *int
	Sizes       *[]string
	Gender      *string
	Tags        *[]string
	Images      *[]string
}

// ReplacesImages reports whether the payload requests a full image replacement.
func (in UpdateInput) ReplacesImages() bool {
	return in.Images != nil
}

// ApplyTo copies the supplied fields onto an existing product.
func (in UpdateInput) ApplyTo(p *Product) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Slug != nil {
		p.Slug = Slugify(*in.Slug)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Sizes != nil {
		p.Sizes = *in.Sizes
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.Images != nil {
		p.SetImages(*in.Images)
	}
}

// Slugify normalizes a title or supplied slug into the canonical slug form:
// lower-cased, spaces replaced with underscores, apostrophes stripped.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "'", "")
	return s
}

func isValidGender(g string) bool {
	switch g {
	case GenderMen, GenderWomen, GenderKid, GenderUnisex:
		return true
	}
	return false
}
