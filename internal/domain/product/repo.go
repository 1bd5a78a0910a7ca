package product

import (
	"context"

	"shopcat/internal/core/id"
)

// Repository defines the persistence contract for the product aggregate.
// Implementations load the image relation eagerly and translate low-level
// store failures into the apperror taxonomy before returning.
type Repository interface {
	// Create inserts a product and its image set as one write.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by primary key, images included.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetByTerm retrieves at most one product whose title matches the term
	// case-insensitively or whose slug equals the lower-cased term.
	GetByTerm(ctx context.Context, term string) (*Product, error)

	// List retrieves products in stable insertion order with eager images.
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update writes changed product fields. When replaceImages is true the
	// entire owned image set is deleted and re-inserted from p.Images; the
	// whole write must happen inside the transaction found in ctx.
	Update(ctx context.Context, p *Product, replaceImages bool) error

	// Delete removes a product; owned images cascade.
	Delete(ctx context.Context, productID id.ID) error

	// DeleteAll removes every product and every owned image.
	DeleteAll(ctx context.Context) error
}

// ChangeAction classifies a recorded catalog mutation.
type ChangeAction string

const (
	ChangeCreate ChangeAction = "create"
	ChangeUpdate ChangeAction = "update"
	ChangeDelete ChangeAction = "delete"
	ChangePurge  ChangeAction = "purge"
)

// ChangeRecorder appends catalog mutations to a change log. Implementations
// must join the transaction carried by ctx so history commits or rolls back
// together with the mutation itself.
type ChangeRecorder interface {
	Record(ctx context.Context, productID id.ID, action ChangeAction, snapshot any) error
}
