package postgres

import (
	"errors"
	"fmt"

	"cms-app/internal/composition"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateWrite is translate for inserts and updates. There a foreign key
// violation means the referenced row is missing, not that rows still point
// at something being deleted.
func translateWrite(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%s: %w: %s", what, composition.ErrNotFound, pgErr.ConstraintName)
	}
	return translate(err, what)
}

// translate maps driver errors onto the composition error kinds.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, composition.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", what, composition.ErrConstraintViolation, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", what, composition.ErrDanglingReference, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
