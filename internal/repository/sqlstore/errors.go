// Package sqlstore implements the domain repositories on database/sql.
// Queries use $n placeholders and RETURNING, which both PostgreSQL and SQLite accept.
package sqlstore

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateGuestConflict maps unique-key violations on guests to the domain duplicate errors.
func translateGuestConflict(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return duplicateFor(pqErr.Constraint + " " + pqErr.Message)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && isSQLiteConstraint(liteErr, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE") {
		return duplicateFor(liteErr.Error())
	}
	return err
}

func duplicateFor(detail string) error {
	if strings.Contains(detail, "email") {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateName
}

// isForeignKeyViolation reports whether err is a missing parent row.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return isSQLiteConstraint(liteErr, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
	}
	return false
}

// isSQLiteConstraint matches the extended code, or the primary constraint code plus its message.
func isSQLiteConstraint(err *sqlite.Error, extended int, marker string) bool {
	code := err.Code()
	return code == extended || (code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), marker))
}
