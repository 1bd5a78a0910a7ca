package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcat/internal/core/apperror"
	"shopcat/internal/core/id"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Mens Chill Crew Neck", "mens_chill_crew_neck"},
		{"strips apostrophes", "Men's Raven Tee", "mens_raven_tee"},
		{"already canonical", "plaid_mode_tee", "plaid_mode_tee"},
		{"mixed", "Women's 3D Wordmark", "womens_3d_wordmark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(CreateInput{
		Title:  "Chill Pullover Hoodie",
		Gender: GenderMen,
	})

	assert.False(t, id.IsNil(p.ID))
	assert.Equal(t, "chill_pullover_hoodie", p.Slug)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.Price.IsZero())
	assert.NotNil(t, p.Sizes)
	assert.NotNil(t, p.Tags)
	assert.Empty(t, p.Images)
}

func TestNew_SuppliedSlugIsNormalized(t *testing.T) {
	slug := "Men's Custom Slug"
	p := New(CreateInput{Title: "Whatever", Gender: GenderMen, Slug: &slug})

	assert.Equal(t, "mens_custom_slug", p.Slug)
}

func TestNew_ImagesKeepOrder(t *testing.T) {
	urls := []string{"c.jpg", "a.jpg", "b.jpg"}
	p := New(CreateInput{Title: "Tee", Gender: GenderUnisex, Images: urls})

	require.Len(t, p.Images, 3)
	for i, img := range p.Images {
		assert.Equal(t, urls[i], img.URL)
		assert.Equal(t, p.ID, img.ProductID)
		assert.False(t, id.IsNil(img.ID))
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Product {
		return New(CreateInput{Title: "Tee", Gender: GenderMen})
	}

	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr bool
	}{
		{"ok", func(p *Product) {}, false},
		{"empty title", func(p *Product) { p.Title = "" }, true},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }, true},
		{"negative stock", func(p *Product) { p.Stock = -5 }, true},
		{"bad gender", func(p *Product) { p.Gender = "dog" }, true},
		{"duplicate image", func(p *Product) { p.SetImages([]string{"a.jpg", "a.jpg"}) }, true},
		{"distinct images", func(p *Product) { p.SetImages([]string{"a.jpg", "b.jpg"}) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateInput_ApplyTo(t *testing.T) {
	p := New(CreateInput{
		Title:  "Old Title",
		Gender: GenderMen,
		Images: []string{"old.jpg"},
	})
	originalSlug := p.Slug
	originalImageID := p.Images[0].ID

	title := "New Title"
	stock := 7
	UpdateInput{Title: &title, Stock: &stock}.ApplyTo(p)

	assert.Equal(t, "New Title", p.Title)
	assert.Equal(t, 7, p.Stock)
	// slug is not re-derived from a changed title
	assert.Equal(t, originalSlug, p.Slug)
	// untouched images keep their identities
	require.Len(t, p.Images, 1)
	assert.Equal(t, originalImageID, p.Images[0].ID)
}

func TestUpdateInput_ReplacesImages(t *testing.T) {
	assert.False(t, UpdateInput{}.ReplacesImages())

	empty := []string{}
	assert.True(t, UpdateInput{Images: &empty}.ReplacesImages())

	p := New(CreateInput{Title: "Tee", Gender: GenderMen, Images: []string{"a.jpg"}})
	UpdateInput{Images: &empty}.ApplyTo(p)
	assert.Empty(t, p.Images)

	urls := []string{"x.jpg", "y.jpg"}
	UpdateInput{Images: &urls}.ApplyTo(p)
	require.Len(t, p.Images, 2)
	assert.Equal(t, "x.jpg", p.Images[0].URL)
	assert.Equal(t, "y.jpg", p.Images[1].URL)
}

func TestFlatten(t *testing.T) {
	p := New(CreateInput{
		Title:  "Tee",
		Gender: GenderWomen,
		Images: []string{"1.jpg", "2.jpg"},
	})

	plain := p.Flatten()

	assert.Equal(t, p.ID, plain.ID)
	assert.Equal(t, []string{"1.jpg", "2.jpg"}, plain.Images)

	p.Images = nil
	assert.Equal(t, []string{}, p.Flatten().Images)
}
