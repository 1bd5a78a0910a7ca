package main

import (
	"github.com/shopspring/decimal"

	"shopcat/internal/domain/product"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// initialProducts is the demo catalog inserted by the seed tool.
var initialProducts = []product.CreateInput{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Price:       decimal.NewFromInt(75),
		Description: strPtr("Introducing the softest crew neck in the collection. Premium cotton blend with a relaxed fit."),
		Stock:       intPtr(7),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      product.GenderMen,
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Price:       decimal.NewFromInt(200),
		Description: strPtr("A warm layering piece with insulated quilting and a hidden placket."),
		Stock:       intPtr(5),
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      product.GenderMen,
		Tags:        []string{"jacket"},
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
		Price:       decimal.NewFromInt(130),
		Description: strPtr("Lightweight bomber with a mesh-lined hood and adjustable hem."),
		Stock:       intPtr(10),
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Gender:      product.GenderMen,
		Tags:        []string{"shirt"},
		Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Price:       decimal.NewFromInt(225),
		Description: strPtr("Cropped silhouette with stowable hood and recycled fill."),
		Stock:       intPtr(85),
		Sizes:       []string{"XS", "S", "M"},
		Gender:      product.GenderWomen,
		Tags:        []string{"hoodie"},
		Images:      []string{"1654238-00-A_0_2000.jpg", "1654238-00-A_1.jpg"},
	},
	{
		Title:       "Women's Chill Half Zip Cropped Hoodie",
		Price:       decimal.NewFromInt(130),
		Description: strPtr("Soft fleece half-zip with a cropped, boxy fit."),
		Stock:       intPtr(10),
		Sizes:       []string{"XS", "S", "M", "XXL"},
		Gender:      product.GenderWomen,
		Tags:        []string{"hoodie"},
		Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
	},
	{
		Title:       "Kids Cyberquad Bomber Jacket",
		Price:       decimal.NewFromInt(65),
		Description: strPtr("A scaled-down bomber with graphic back print, made to be worn daily."),
		Stock:       intPtr(10),
		Sizes:       []string{"XS", "S", "M"},
		Gender:      product.GenderKid,
		Tags:        []string{"shirt"},
		Images:      []string{"1742702-00-A_0_2000.jpg", "1742702-00-A_1.jpg"},
	},
	{
		Title:  "Unisex Logo Tee",
		Price:  decimal.NewFromInt(35),
		Stock:  intPtr(50),
		Sizes:  []string{"XS", "S", "M", "L", "XL"},
		Gender: product.GenderUnisex,
		Tags:   []string{"shirt"},
		Images: []string{"7654393-00-A_2_2000.jpg", "7654393-00-A_3.jpg"},
	},
	{
		Title:  "Unisex Relaxed Joggers",
		Price:  decimal.NewFromInt(85),
		Stock:  intPtr(100),
		Sizes:  []string{"XS", "S", "M", "L"},
		Gender: product.GenderUnisex,
		Tags:   []string{"pants"},
		Images: []string{"1658013-00-A_0_2000.jpg", "1658013-00-A_1.jpg"},
	},
}
