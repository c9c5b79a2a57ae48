package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/wodlog-api/internal/store"
)

// SQLSTATE codes the stores react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeExclusionViolation  = "23P01"
)

// scoreKindConstraint keeps every result of an athlete on a WOD to one score
// kind.
const scoreKindConstraint = "results_single_score_kind"

// uniqueIndexErrors names the unique indexes that carry a domain meaning.
// Any other unique violation is reported as store.ErrDuplicate.
var uniqueIndexErrors = map[string]error{
	"athletes_email_key": store.ErrEmailExists,
	"wods_name_key":      store.ErrWodNameExists,
}

// MapError translates a driver error into the store error for the violated
// constraint. The driver error stays in the chain for logging; errors that
// are not constraint violations are returned unchanged.
func MapError(err error) error {
	pgErr := asPgError(err)
	if pgErr == nil {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		if sentinel, ok := uniqueIndexErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %v", sentinel, err)
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s still referenced: %v", store.ErrInvalidReference, pgErr.ConstraintName, err)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s rejected the row: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case codeExclusionViolation:
		if pgErr.ConstraintName == scoreKindConstraint {
			return fmt.Errorf("%w: %v", store.ErrScoreKindMismatch, err)
		}
		return err
	case codeNotNullViolation:
		return fmt.Errorf("%w: %s must not be null: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err carries a unique-index violation.
func IsUniqueViolation(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err carries a foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == codeForeignKeyViolation
}

func asPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}
