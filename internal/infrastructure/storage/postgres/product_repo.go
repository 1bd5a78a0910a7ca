package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopcat/internal/core/apperror"
	"shopcat/internal/core/id"
	"shopcat/internal/domain/product"
)

const (
	productsTable = "products"
	imagesTable   = "product_images"
)

// Compile-time check that ProductRepo implements the domain contract.
var _ product.Repository = (*ProductRepo)(nil)

// productCols and imageCols are derived from entity "db" tags once at init.
var (
	productCols = ExtractDBColumns[product.Product]()
	imageCols   = ExtractDBColumns[product.Image]()
)

// ProductRepo persists the product aggregate. Image rows are loaded eagerly
// and written together with their owning product; queries join the
// transaction carried by ctx when one is active.
type ProductRepo struct {
	txManager *TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *TxManager) *ProductRepo {
	return &ProductRepo{txManager: txManager}
}

// builder returns a squirrel builder with PostgreSQL placeholder format.
func (r *ProductRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ProductRepo) querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// --- Query building ---

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(productCols...).
		From(productsTable)
}

func (r *ProductRepo) buildInsertProduct(p *product.Product) squirrel.InsertBuilder {
	data := StructToMap(p)
	return r.builder().
		Insert(productsTable).
		SetMap(data)
}

func (r *ProductRepo) buildInsertImages(images []product.Image) squirrel.InsertBuilder {
	q := r.builder().
		Insert(imagesTable).
		Columns(imageCols...)
	for _, img := range images {
		q = q.Values(img.ID, img.URL, img.ProductID)
	}
	return q
}

func (r *ProductRepo) buildSelectByTerm(term string) squirrel.SelectBuilder {
	// Dual-mode match: case-insensitive title or exact lower-cased slug.
	// Ordering by id keeps tie resolution deterministic.
	return r.baseSelect().
		Where(squirrel.Or{
			squirrel.Expr("UPPER(title) = ?", strings.ToUpper(term)),
			squirrel.Eq{"slug": strings.ToLower(term)},
		}).
		OrderBy("id ASC").
		Limit(1)
}

func (r *ProductRepo) buildList(limit, offset int) squirrel.SelectBuilder {
	// UUIDv7 primary keys are time-ordered, so id order is insertion order.
	q := r.baseSelect().OrderBy("id ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}

func (r *ProductRepo) buildUpdateProduct(p *product.Product) squirrel.UpdateBuilder {
	data := StructToMap(p)
	delete(data, "id") // never update the primary key
	return r.builder().
		Update(productsTable).
		SetMap(data).
		Where(squirrel.Eq{"id": p.ID})
}

// --- Repository operations ---

// Create inserts a product and its image set as one write.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	sql, args, err := r.buildInsertProduct(p).ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return translateErr(ctx, "insert product", err)
	}

	return r.insertImages(ctx, p.Images)
}

// GetByID retrieves a product by primary key with eager images.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	return r.getOne(ctx, q, productID.String())
}

// GetByTerm retrieves at most one product matching the term by
// case-insensitive title or lower-cased slug.
func (r *ProductRepo) GetByTerm(ctx context.Context, term string) (*product.Product, error) {
	return r.getOne(ctx, r.buildSelectByTerm(term), term)
}

// List retrieves products in stable insertion order with eager images.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	sql, args, err := r.buildList(limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	var products []*product.Product
	if err := pgxscan.Select(ctx, r.querier(ctx), &products, sql, args...); err != nil {
		return nil, translateErr(ctx, "list products", err)
	}

	if err := r.loadImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Update writes changed product fields, optionally replacing the whole
// owned image set. Callers are expected to run it inside a transaction;
// delete and insert then commit or roll back together with the field update.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product, replaceImages bool) error {
	sql, args, err := r.buildUpdateProduct(p).ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return translateErr(ctx, "update product", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(productsTable, p.ID.String())
	}

	if !replaceImages {
		return nil
	}

	// Explicit two-step delete-then-insert: prior images are destroyed
	// outright so no orphan image rows can survive a replacement.
	delSQL, delArgs, err := r.builder().
		Delete(imagesTable).
		Where(squirrel.Eq{"product_id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete images: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, delSQL, delArgs...); err != nil {
		return translateErr(ctx, "delete product images", err)
	}

	return r.insertImages(ctx, p.Images)
}

// Delete removes a product; image rows cascade via the foreign key.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	sql, args, err := r.builder().
		Delete(productsTable).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete product: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return translateErr(ctx, "delete product", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(productsTable, productID.String())
	}
	return nil
}

// DeleteAll removes every product; every owned image cascades.
func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	sql, args, err := r.builder().Delete(productsTable).ToSql()
	if err != nil {
		return fmt.Errorf("build delete all: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return translateErr(ctx, "delete all products", err)
	}
	return nil
}

// --- Helpers ---

func (r *ProductRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p := &product.Product{}
	if err := pgxscan.Get(ctx, r.querier(ctx), p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(productsTable, key)
		}
		return nil, translateErr(ctx, "get product", err)
	}

	if err := r.loadImages(ctx, []*product.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) insertImages(ctx context.Context, images []product.Image) error {
	if len(images) == 0 {
		return nil
	}

	sql, args, err := r.buildInsertImages(images).ToSql()
	if err != nil {
		return fmt.Errorf("build insert images: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return translateErr(ctx, "insert product images", err)
	}
	return nil
}

// loadImages fills the owned image collections for the given products.
// Image rows carry UUIDv7 ids, so id order is submission order.
func (r *ProductRepo) loadImages(ctx context.Context, products []*product.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]id.ID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	sql, args, err := r.builder().
		Select(imageCols...).
		From(imagesTable).
		Where(squirrel.Eq{"product_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select images: %w", err)
	}

	var images []product.Image
	if err := pgxscan.Select(ctx, r.querier(ctx), &images, sql, args...); err != nil {
		return translateErr(ctx, "load product images", err)
	}

	byProduct := make(map[id.ID][]product.Image, len(products))
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}
	for _, p := range products {
		p.Images = byProduct[p.ID]
		if p.Images == nil {
			p.Images = []product.Image{}
		}
	}
	return nil
}
