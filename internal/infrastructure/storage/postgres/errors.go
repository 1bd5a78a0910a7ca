package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"shopcat/internal/core/apperror"
	"shopcat/pkg/logger"
)

// PostgreSQL error codes relevant to the catalog schema.
const (
	codeUniqueViolation = "23505"
)

// translateErr maps persistence-layer failure signals to the closed error
// taxonomy. A uniqueness violation becomes a duplicate-entry error carrying
// the store's detail message verbatim; everything else is logged in full
// server-side and collapsed into the generic internal kind so no store
// detail leaks to the caller.
//
// Errors that are already structured (e.g. not-found raised by a repo
// method) pass through untouched.
func translateErr(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return apperror.NewDuplicate(detail).WithCause(err)
	}

	logger.Error(ctx, "database error", "op", op, "error", err)
	return apperror.NewInternal(err)
}
