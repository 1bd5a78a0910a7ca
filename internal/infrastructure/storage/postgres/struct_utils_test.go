package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"shopcat/internal/domain/product"
)

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	expectedCols := []string{
		"id", "title", "price", "description", "slug", "stock", "sizes", "gender", "tags",
	}
	assert.Equal(t, expectedCols, cols)

	// relation field tagged "-" never leaks into the column set
	assert.NotContains(t, cols, "images")
}

func TestExtractDBColumns_Image(t *testing.T) {
	cols := ExtractDBColumns[product.Image]()
	assert.Equal(t, []string{"id", "url", "product_id"}, cols)
}

func TestStructToMap_Product(t *testing.T) {
	p := product.New(product.CreateInput{
		Title:  "Raven Tee",
		Price:  decimal.NewFromInt(35),
		Gender: product.GenderMen,
		Tags:   []string{"shirt"},
		Images: []string{"a.jpg"},
	})

	m := StructToMap(p)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, "Raven Tee", m["title"])
	assert.Equal(t, "raven_tee", m["slug"])
	assert.Equal(t, []string{"shirt"}, m["tags"])
	assert.NotContains(t, m, "images")
	assert.Len(t, m, 9)
}
