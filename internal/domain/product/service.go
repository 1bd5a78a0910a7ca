package product

import (
	"context"
	"fmt"

	"shopcat/internal/core/apperror"
	"shopcat/internal/core/id"
	"shopcat/internal/core/tx"
	"shopcat/pkg/logger"
)

// Service is the catalog façade: create, list, read, update, delete and
// bulk-clear operations over the product aggregate. Each operation is a
// stateless request-scoped unit of work; concurrency control is delegated
// entirely to the store's transaction manager.
type Service struct {
	repo      Repository
	txManager tx.Manager
	changes   ChangeRecorder
}

// ServiceConfig configures the catalog service.
type ServiceConfig struct {
	Repo      Repository
	TxManager tx.Manager
	// Changes is optional; when nil no change history is written.
	Changes ChangeRecorder
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:      cfg.Repo,
		txManager: cfg.TxManager,
		changes:   cfg.Changes,
	}
}

// Create persists a new product together with its image set as one write.
// The slug is derived from the title when absent. A title or slug collision
// surfaces as a duplicate-entry error; any other persistence failure as an
// internal one.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Plain, error) {
	p := New(in)

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return s.record(ctx, p.ID, ChangeCreate, p)
	})
	if err != nil {
		return nil, s.normalizeErr(ctx, err)
	}

	return p.Flatten(), nil
}

// List returns products in stable insertion order, images flattened.
// An empty result set is valid output, not an error.
func (s *Service) List(ctx context.Context, page Pagination) ([]*Plain, error) {
	limit, offset, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, s.normalizeErr(ctx, err)
	}

	plains := make([]*Plain, len(products))
	for i, p := range products {
		plains[i] = p.Flatten()
	}
	return plains, nil
}

// FindOne resolves an opaque term to a single product in raw entity shape
// (nested images), intended for internal composition.
//
// A term with the canonical UUID shape resolves by exact primary key;
// anything else resolves by case-insensitive title or slug match.
func (s *Service) FindOne(ctx context.Context, term string) (*Product, error) {
	var (
		p   *Product
		err error
	)

	if id.IsValid(term) {
		p, err = s.repo.GetByID(ctx, id.MustParse(term))
	} else {
		p, err = s.repo.GetByTerm(ctx, term)
	}

	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", term)
		}
		return nil, s.normalizeErr(ctx, err)
	}

	return p, nil
}

// FindOnePlain resolves a term like FindOne and flattens the result for
// external consumption.
func (s *Service) FindOnePlain(ctx context.Context, term string) (*Plain, error) {
	p, err := s.FindOne(ctx, term)
	if err != nil {
		return nil, err
	}
	return p.Flatten(), nil
}

// Update applies a partial field update to the product with the given
// primary key. When the payload carries an image list (even an empty one),
// the entire existing image set is replaced atomically with the field
// update: either everything commits or the product and its images are left
// exactly as they were.
func (s *Service) Update(ctx context.Context, productID id.ID, in UpdateInput) (*Plain, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, s.normalizeErr(ctx, err)
	}

	in.ApplyTo(p)

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, p, in.ReplacesImages()); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return s.record(ctx, p.ID, ChangeUpdate, p)
	})
	if err != nil {
		return nil, s.normalizeErr(ctx, err)
	}

	return p.Flatten(), nil
}

// Remove deletes the product with the given primary key and cascades its
// images. The deleted snapshot is returned.
func (s *Service) Remove(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, s.normalizeErr(ctx, err)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, productID); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return s.record(ctx, productID, ChangeDelete, p)
	})
	if err != nil {
		return nil, s.normalizeErr(ctx, err)
	}

	return p, nil
}

// DeleteAll unconditionally wipes the catalog, cascading every image.
// Intended for bulk reseeding workflows only.
func (s *Service) DeleteAll(ctx context.Context) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete all products: %w", err)
		}
		return s.record(ctx, id.Nil(), ChangePurge, nil)
	})
	if err != nil {
		return s.normalizeErr(ctx, err)
	}
	return nil
}

// record appends to the change log when one is configured.
func (s *Service) record(ctx context.Context, productID id.ID, action ChangeAction, snapshot any) error {
	if s.changes == nil {
		return nil
	}
	if err := s.changes.Record(ctx, productID, action, snapshot); err != nil {
		return fmt.Errorf("record %s: %w", action, err)
	}
	return nil
}

// normalizeErr keeps structured errors intact and collapses everything
// else into the generic internal kind, logging the cause server-side.
func (s *Service) normalizeErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	logger.Error(ctx, "unexpected persistence error", "error", err)
	return apperror.NewInternal(err)
}
