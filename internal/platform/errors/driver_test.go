package errors

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	_ "modernc.org/sqlite"
)

func pg(code string) error { return &pgconn.PgError{Code: code, Message: "pg says no"} }

func sqliteErr(t *testing.T, ddl, stmt string) error {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, _ = db.ExecContext(ctx, stmt)
	_, err = db.ExecContext(ctx, stmt)
	if err == nil {
		t.Fatalf("%s: expected an error", stmt)
	}
	return err
}

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		state string
		want  ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22001", ErrorCodeInvalidArgument},
		{"22P02", ErrorCodeInvalidArgument},
		{"57014", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"25006", ErrorCodeUnavailable},
		{"40001", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(fmt.Errorf("wrapped: %w", pg(c.state)))
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", c.state, got, ok, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("boom")); ok {
		t.Fatal("foreign error should report !ok")
	}
	if !IsDuplicateKey(pg("23505")) || IsDuplicateKey(pg("23502")) {
		t.Fatal("IsDuplicateKey mismatch")
	}
}

func TestSQLiteErrorCode(t *testing.T) {
	unique := sqliteErr(t, `CREATE TABLE t (k TEXT NOT NULL UNIQUE)`, `INSERT INTO t (k) VALUES ('a')`)
	if code, ok := SQLiteErrorCode(unique); !ok || code != ErrorCodeDuplicateKey {
		t.Fatalf("unique: %v,%v", code, ok)
	}
	notNull := sqliteErr(t, `CREATE TABLE t (k TEXT NOT NULL)`, `INSERT INTO t (k) VALUES (NULL)`)
	if code, ok := SQLiteErrorCode(notNull); !ok || code != ErrorCodeValidation {
		t.Fatalf("not null: %v,%v", code, ok)
	}
	if _, ok := SQLiteErrorCode(stderrs.New("boom")); ok {
		t.Fatal("foreign error should report !ok")
	}
}

func TestFromDB(t *testing.T) {
	if FromDB(nil, "x") != nil {
		t.Fatal("FromDB(nil) should be nil")
	}
	if CodeOf(FromDB(pg("23505"), "x")) != ErrorCodeDuplicateKey {
		t.Fatal("FromDB should map pg unique violations")
	}
	unique := sqliteErr(t, `CREATE TABLE t (k TEXT PRIMARY KEY)`, `INSERT INTO t (k) VALUES ('a')`)
	if CodeOf(FromDB(unique, "insert")) != ErrorCodeDuplicateKey {
		t.Fatal("FromDB should map sqlite unique violations")
	}
	if CodeOf(FromDB(NotFoundf("gone"), "x")) != ErrorCodeNotFound {
		t.Fatal("FromDB should keep project codes")
	}
	if CodeOf(FromDB(stderrs.New("boom"), "x")) != ErrorCodeDB {
		t.Fatal("FromDB should default to DB")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := sqliteErr(t, `CREATE TABLE t (k TEXT UNIQUE)`, `INSERT INTO t (k) VALUES ('a')`)
	for _, err := range []error{pg("23505"), fmt.Errorf("wrapped: %w", unique), DuplicateKeyf("dup")} {
		if !IsUniqueViolation(err) {
			t.Fatalf("IsUniqueViolation(%v) = false", err)
		}
	}
	for _, err := range []error{pg("23502"), stderrs.New("boom"), NotFoundf("x")} {
		if IsUniqueViolation(err) {
			t.Fatalf("IsUniqueViolation(%v) = true", err)
		}
	}
}
