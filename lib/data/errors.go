package data

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors every repository maps driver failures onto, so handlers
// can pick the right user-facing message without touching SQL details.
var (
	// ErrNotFound means the referenced row no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("already exists")

	// ErrInUse means the row is still referenced elsewhere and cannot be
	// deleted.
	ErrInUse = errors.New("still in use")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// mapError translates low-level database errors into the sentinel taxonomy.
// Errors it does not recognize pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicate
		case pqForeignKeyViolation:
			return ErrInUse
		}
	}
	return err
}
