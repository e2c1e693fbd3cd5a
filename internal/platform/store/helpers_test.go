package store

import (
	"context"
	"testing"

	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/store/sqlite"
)

type kv struct {
	K string
	V int
}

func scanKV(r Row) (kv, error) {
	var x kv
	err := r.Scan(&x.K, &x.V)
	return x, err
}

// liteFixture opens an in memory sqlite adapter with a small kv table
func liteFixture(t *testing.T) *liteAdapter {
	t.Helper()
	l, err := sqlite.Open(context.Background(), sqlite.Config{Path: sqlite.Memory})
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	a := newLiteAdapter(l, traced{})
	t.Cleanup(func() { _ = a.Close() })
	if _, err := a.Exec(context.Background(), `CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	return a
}

func TestExecOne(t *testing.T) {
	t.Parallel()
	a := liteFixture(t)
	ctx := context.Background()

	if err := ExecOne(ctx, a, `INSERT INTO kv (k, v) VALUES (?, ?)`, "a", 1); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := ExecOne(ctx, a, `INSERT INTO kv (k, v) VALUES (?, ?)`, "b", 2); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// two rows affected is not one
	if err := ExecOne(ctx, a, `UPDATE kv SET v = v + 1`); err == nil {
		t.Fatal("expected error when more than one row changes")
	}
	// zero rows affected is not one either
	if err := ExecOne(ctx, a, `DELETE FROM kv WHERE k = ?`, "zzz"); err == nil {
		t.Fatal("expected error when nothing changes")
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()
	a := liteFixture(t)
	ctx := context.Background()

	if _, err := a.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('a', 7), ('b', 8)`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	n, err := Scalar[int](ctx, a, `SELECT count(*) FROM kv`)
	if err != nil || n != 2 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
	if _, err := Scalar[int](ctx, a, `SELECT v FROM kv WHERE k = 'nope'`); err == nil {
		t.Fatal("expected no rows error")
	}
}

func TestOneAndMany(t *testing.T) {
	t.Parallel()
	a := liteFixture(t)
	ctx := context.Background()

	empty, err := Many(ctx, a, scanKV, `SELECT k, v FROM kv`)
	if err != nil {
		t.Fatalf("Many empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("Many on empty table should be a non nil empty slice, got %#v", empty)
	}

	if _, err := a.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('a', 1), ('b', 2), ('c', 3)`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := One(ctx, a, scanKV, `SELECT k, v FROM kv WHERE k = ?`, "b")
	if err != nil || got != (kv{"b", 2}) {
		t.Fatalf("One = %+v, %v", got, err)
	}

	_, err = One(ctx, a, scanKV, `SELECT k, v FROM kv WHERE k = ?`, "x")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("One missing should be NotFound, got %v", err)
	}

	if _, err := One(ctx, a, scanKV, `SELECT k, v FROM kv`); err == nil {
		t.Fatal("One over many rows should fail")
	}

	all, err := Many(ctx, a, scanKV, `SELECT k, v FROM kv ORDER BY k LIMIT ? OFFSET ?`, 2, 1)
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if len(all) != 2 || all[0].K != "b" || all[1].K != "c" {
		t.Fatalf("Many window = %+v", all)
	}
}

func TestLiteAdapter_TxCommitAndRollback(t *testing.T) {
	t.Parallel()
	a := liteFixture(t)
	ctx := context.Background()

	err := a.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('keep', 1)`)
		return err
	})
	if err != nil {
		t.Fatalf("commit tx: %v", err)
	}

	boom := perr.Internalf("boom")
	err = a.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('drop', 2)`); err != nil {
			return err
		}
		// reads inside the tx see the pending row
		n, err := Scalar[int](ctx, q, `SELECT count(*) FROM kv`)
		if err != nil || n != 2 {
			t.Errorf("in tx count = %d, %v", n, err)
		}
		return boom
	})
	if err != boom {
		t.Fatalf("Tx should return fn error, got %v", err)
	}

	rows, err := Many(ctx, a, scanKV, `SELECT k, v FROM kv`)
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if len(rows) != 1 || rows[0].K != "keep" {
		t.Fatalf("rollback leaked rows: %+v", rows)
	}
}

func TestLiteAdapter_ColumnsAndPing(t *testing.T) {
	t.Parallel()
	a := liteFixture(t)
	ctx := context.Background()

	if err := a.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	rs, err := a.Query(ctx, `SELECT k, v FROM kv`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rs.Close()
	cols := rs.Columns()
	if len(cols) != 2 || cols[0] != "k" || cols[1] != "v" {
		t.Fatalf("columns = %v", cols)
	}

	var nilA *liteAdapter
	if err := nilA.Ping(ctx); err == nil {
		t.Fatal("nil adapter ping should fail")
	}
}
