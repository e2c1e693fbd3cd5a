package errors

// maps pgx and modernc sqlite errors onto ErrorCode

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE codes the entries schema can raise
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrReadOnlySQLTransaction    = "25006"
	pgErrCannotConnectNow          = "57P03"
	pgErrQueryCanceled             = "57014" // statement_timeout
)

// DBErrorCode maps a Postgres error to an ErrorCode
// !ok means err holds no PgError
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow, pgErrQueryCanceled:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// IsDuplicateKey reports whether err is a Postgres unique violation
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return stderrs.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// sqliteCode returns the extended result code, or -1 when err is not from sqlite
func sqliteCode(err error) int {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return -1
	}
	return se.Code()
}

// SQLiteErrorCode maps a sqlite error to an ErrorCode
func SQLiteErrorCode(err error) (ErrorCode, bool) {
	c := sqliteCode(err)
	if c < 0 {
		return ErrorCodeUnknown, false
	}
	switch c {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation, true
	}
	// primary code lives in the low byte
	switch c & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromDB wraps a storage error with a mapped ErrorCode, trying each known driver
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if code, ok := SQLiteErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if e, ok := As(err); ok {
		return Wrap(err, e.code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsUniqueViolation reports whether err is a unique constraint violation from any driver
func IsUniqueViolation(err error) bool {
	if IsDuplicateKey(err) || IsCode(err, ErrorCodeDuplicateKey) {
		return true
	}
	code, ok := SQLiteErrorCode(err)
	return ok && code == ErrorCodeDuplicateKey
}
