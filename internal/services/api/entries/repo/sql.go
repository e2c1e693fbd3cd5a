package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"biasdb/internal/modkit/repokit"
	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/paging"
	"biasdb/internal/platform/store"
	"biasdb/internal/services/api/entries/domain"

	"github.com/google/uuid"
)

// statements holds the prebuilt sql for one layout and dialect
type statements struct {
	find   string
	insert string
	list   string
	update string
	delete string
}

func arg(d store.Driver, n int) string {
	if d == store.DriverSQLite {
		return "?" + strconv.Itoa(n)
	}
	return "$" + strconv.Itoa(n)
}

func build[E domain.Entry](l domain.Layout[E], d store.Driver) statements {
	cols := "hash, text, " + strings.Join(l.Columns, ", ")

	ins := make([]string, 0, len(l.Columns)+3)
	for i := 1; i <= len(l.Columns)+3; i++ {
		ins = append(ins, arg(d, i))
	}

	sets := make([]string, 0, len(l.Columns)+1)
	for i, c := range l.Columns {
		sets = append(sets, c+" = "+arg(d, i+2))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	return statements{
		find: fmt.Sprintf(`SELECT %s FROM %s WHERE hash = %s`, cols, l.Table, arg(d, 1)),
		insert: fmt.Sprintf(`INSERT INTO %s (id, %s) VALUES (%s)`,
			l.Table, cols, strings.Join(ins, ", ")),
		list: fmt.Sprintf(`SELECT %s FROM %s
WHERE (%[3]s = '' OR hash = %[3]s)
AND (%[4]s = '' OR bias_type = %[4]s)
AND (%[5]s = '' OR url = %[5]s)
ORDER BY seq
LIMIT %[6]s OFFSET %[7]s`, cols, l.Table, arg(d, 1), arg(d, 2), arg(d, 3), arg(d, 4), arg(d, 5)),
		update: fmt.Sprintf(`UPDATE %s SET %s WHERE hash = %s RETURNING %s`,
			l.Table, strings.Join(sets, ", "), arg(d, 1), cols),
		delete: fmt.Sprintf(`DELETE FROM %s WHERE hash = %s RETURNING %s`, l.Table, arg(d, 1), cols),
	}
}

type (
	// SQL binds a layout to a sql Queryer
	SQL[E domain.Entry] struct {
		layout domain.Layout[E]
		stmts  statements
	}

	queries[E domain.Entry] struct {
		q repokit.Queryer
		*SQL[E]
	}
)

// NewSQL returns a binder for l using the placeholder style of d
func NewSQL[E domain.Entry](l domain.Layout[E], d store.Driver) *SQL[E] {
	return &SQL[E]{layout: l, stmts: build(l, d)}
}

// Bind implements repokit.Binder
func (s *SQL[E]) Bind(q repokit.Queryer) Repo[E] { return &queries[E]{q: q, SQL: s} }

func (r *queries[E]) scan(row store.Row) (E, error) {
	var e E
	err := row.Scan(r.layout.Dest(&e)...)
	return e, err
}

func (r *queries[E]) FindByHash(ctx context.Context, hash string) (E, error) {
	e, err := store.One(ctx, r.q, r.scan, r.stmts.find, hash)
	return e, perr.FromDB(err, "find "+r.layout.Table)
}

func (r *queries[E]) Insert(ctx context.Context, e E) error {
	args := append([]any{uuid.NewString(), e.EntryHash(), e.EntryText()}, r.layout.Values(e)...)
	return perr.FromDB(store.ExecOne(ctx, r.q, r.stmts.insert, args...), "insert "+r.layout.Table)
}

func (r *queries[E]) List(ctx context.Context, f domain.Filter, w paging.Window) ([]E, error) {
	out, err := store.Many(ctx, r.q, r.scan, r.stmts.list, f.Hash, f.BiasType, f.URL, w.Limit, w.Skip)
	if err != nil {
		return nil, perr.FromDB(err, "list "+r.layout.Table)
	}
	return out, nil
}

func (r *queries[E]) Update(ctx context.Context, e E) (E, error) {
	args := append([]any{e.EntryHash()}, r.layout.Values(e)...)
	out, err := store.One(ctx, r.q, r.scan, r.stmts.update, args...)
	return out, perr.FromDB(err, "update "+r.layout.Table)
}

func (r *queries[E]) Delete(ctx context.Context, hash string) (E, error) {
	out, err := store.One(ctx, r.q, r.scan, r.stmts.delete, hash)
	return out, perr.FromDB(err, "delete "+r.layout.Table)
}

// sqlUnit runs repo work against a TxRunner
type sqlUnit[E domain.Entry] struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo[E]]
}

// NewSQLUnit binds b to db
func NewSQLUnit[E domain.Entry](db repokit.TxRunner, b repokit.Binder[Repo[E]]) Unit[E] {
	if db == nil {
		panic("entries repo requires a non nil TxRunner")
	}
	if b == nil {
		panic("entries repo requires a non nil binder")
	}
	return sqlUnit[E]{db: db, binder: b}
}

func (u sqlUnit[E]) Repo() Repo[E] { return repokit.MustBind(u.binder, u.db) }

func (u sqlUnit[E]) Tx(ctx context.Context, fn func(Repo[E]) error) error {
	return repokit.WithTx(ctx, u.db, func(q repokit.Queryer) error {
		return fn(repokit.MustBind(u.binder, q))
	})
}
