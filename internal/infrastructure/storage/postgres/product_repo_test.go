package postgres

import (
	"testing"

	"shopcat/internal/core/id"
	"shopcat/internal/domain/product"
)

func TestBuildSelectByTerm(t *testing.T) {
	repo := NewProductRepo(nil)

	sql, args, err := repo.buildSelectByTerm("Plaid Mode Tee").ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, title, price, description, slug, stock, sizes, gender, tags " +
		"FROM products WHERE (UPPER(title) = $1 OR slug = $2) ORDER BY id ASC LIMIT 1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 {
		t.Fatalf("Args count mismatch\nwant: 2\ngot:  %d", len(args))
	}
	if args[0] != "PLAID MODE TEE" {
		t.Errorf("title arg mismatch: %v", args[0])
	}
	if args[1] != "plaid mode tee" {
		t.Errorf("slug arg mismatch: %v", args[1])
	}
}

func TestBuildList(t *testing.T) {
	repo := NewProductRepo(nil)

	tests := []struct {
		name    string
		limit   int
		offset  int
		wantSQL string
	}{
		{
			name:  "default page",
			limit: 10, offset: 0,
			wantSQL: "SELECT id, title, price, description, slug, stock, sizes, gender, tags " +
				"FROM products ORDER BY id ASC LIMIT 10",
		},
		{
			name:  "second page",
			limit: 10, offset: 10,
			wantSQL: "SELECT id, title, price, description, slug, stock, sizes, gender, tags " +
				"FROM products ORDER BY id ASC LIMIT 10 OFFSET 10",
		},
		{
			name:  "zero limit means unbounded",
			limit: 0, offset: 0,
			wantSQL: "SELECT id, title, price, description, slug, stock, sizes, gender, tags " +
				"FROM products ORDER BY id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := repo.buildList(tt.limit, tt.offset).ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
		})
	}
}

func TestBuildInsertImages(t *testing.T) {
	repo := NewProductRepo(nil)
	productID := id.New()

	images := []product.Image{
		{ID: id.New(), URL: "a.jpg", ProductID: productID},
		{ID: id.New(), URL: "b.jpg", ProductID: productID},
	}

	sql, args, err := repo.buildInsertImages(images).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "INSERT INTO product_images (id,url,product_id) VALUES ($1,$2,$3),($4,$5,$6)"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 6 {
		t.Fatalf("Args count mismatch\nwant: 6\ngot:  %d", len(args))
	}
	// values stay in image order so UUIDv7 ids preserve submission order
	if args[1] != "a.jpg" || args[4] != "b.jpg" {
		t.Errorf("URL args out of order: %v", args)
	}
}

func TestBuildInsertProduct(t *testing.T) {
	repo := NewProductRepo(nil)
	p := product.New(product.CreateInput{Title: "Tee", Gender: "men"})

	sql, args, err := repo.buildInsertProduct(p).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	// SetMap emits columns in sorted order
	wantSQL := "INSERT INTO products (description,gender,id,price,sizes,slug,stock,tags,title) " +
		"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 9 {
		t.Fatalf("Args count mismatch\nwant: 9\ngot:  %d", len(args))
	}
}

func TestBuildUpdateProduct(t *testing.T) {
	repo := NewProductRepo(nil)
	p := product.New(product.CreateInput{Title: "Tee", Gender: "men"})

	sql, args, err := repo.buildUpdateProduct(p).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE products SET description = $1, gender = $2, price = $3, " +
		"sizes = $4, slug = $5, stock = $6, tags = $7, title = $8 WHERE id = $9"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if args[len(args)-1] != p.ID {
		t.Errorf("expected id as last arg, got %v", args[len(args)-1])
	}
}
