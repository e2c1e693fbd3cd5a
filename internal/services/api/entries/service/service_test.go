package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"biasdb/internal/core/digest"
	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/metrics"
	"biasdb/internal/platform/paging"
	"biasdb/internal/services/api/entries/domain"
	"biasdb/internal/services/api/entries/repo"
	jdom "biasdb/internal/services/journal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type captured struct {
	mu     sync.Mutex
	events []jdom.Event
}

func (c *captured) Record(_ context.Context, ev jdom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captured) ops() []jdom.Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]jdom.Op, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.Op)
	}
	return out
}

type fixture struct {
	svc *Svc[domain.Report, domain.ReportInput, domain.ReportPatch]
	mem *repo.Memory[domain.Report]
	rec *captured
}

func newFixture(t *testing.T, h digest.Hasher) fixture {
	t.Helper()
	mem := repo.NewMemory[domain.Report]()
	rec := &captured{}
	svc := New(domain.ReportKind, repo.Unit[domain.Report](mem), Options{Hasher: h, Recorder: rec})
	return fixture{svc: svc, mem: mem, rec: rec}
}

func in(text, biasType string, level float64) domain.ReportInput {
	return domain.ReportInput{Text: text, BiasType: biasType, BiasLevel: ptr(level)}
}

func TestCreateReadUpdateDelete_Scenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	want := digest.XXH3{}.Digest("foo")

	created, err := f.svc.Create(ctx, in("foo", "race", 2))
	require.NoError(t, err)
	require.Equal(t, domain.Report{Hash: want, Text: "foo", BiasType: "race", BiasLevel: 2}, created)

	_, err = f.svc.Create(ctx, in("foo", "race", 2))
	require.True(t, perr.IsCode(err, perr.ErrorCodeConflict), "got %v", err)

	updated, err := f.svc.Update(ctx, "foo", domain.ReportPatch{BiasLevel: ptr(5.0)})
	require.NoError(t, err)
	require.Equal(t, 5.0, updated.BiasLevel)
	require.Equal(t, want, updated.Hash)

	deleted, err := f.svc.Delete(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, updated, deleted)

	items, err := f.svc.Read(ctx, domain.Query{Filter: domain.Filter{Hash: want}})
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	require.Equal(t, []jdom.Op{jdom.OpCreate, jdom.OpUpdate, jdom.OpDelete}, f.rec.ops())
}

func TestCreate_HashCollisionIsDistinctFromConflict(t *testing.T) {
	t.Parallel()
	constant := digest.HasherFunc(func(string) string { return "same" })
	f := newFixture(t, constant)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, in("first", "x", 1))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, in("second", "x", 1))
	require.True(t, perr.IsCode(err, perr.ErrorCodeHashCollision), "got %v", err)
	require.False(t, perr.IsCode(err, perr.ErrorCodeConflict))

	_, err = f.svc.Create(ctx, in("first", "x", 1))
	require.True(t, perr.IsCode(err, perr.ErrorCodeConflict), "got %v", err)

	// the colliding locator must not reach the stored entry
	_, err = f.svc.Update(ctx, "second", domain.ReportPatch{BiasLevel: ptr(9.0)})
	require.True(t, perr.IsCode(err, perr.ErrorCodeHashCollision), "got %v", err)
	_, err = f.svc.Delete(ctx, "second")
	require.True(t, perr.IsCode(err, perr.ErrorCodeHashCollision), "got %v", err)
	require.Equal(t, 1, f.mem.Len())
}

func TestUpdateDelete_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, "ghost", domain.ReportPatch{BiasLevel: ptr(1.0)})
	require.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "got %v", err)

	_, err = f.svc.Delete(ctx, "ghost")
	require.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "got %v", err)
	require.Empty(t, f.rec.ops())
}

func TestUpdate_PatchRules(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, in("foo", "race", 2))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "foo", domain.ReportPatch{})
	require.True(t, perr.IsCode(err, perr.ErrorCodeValidation), "got %v", err)

	_, err = f.svc.Update(ctx, "foo", domain.ReportPatch{Text: ptr("bar")})
	require.True(t, perr.IsCode(err, perr.ErrorCodeValidation), "got %v", err)

	got, err := f.svc.Read(ctx, domain.Query{Text: "foo"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 2.0, got[0].BiasLevel)
}

func TestRead_DefaultWindowAndPaging(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	for i := 0; i < 1500; i++ {
		_, err := f.svc.Create(ctx, in(fmt.Sprintf("text %d", i), "gender", 1))
		require.NoError(t, err)
	}

	first, err := f.svc.Read(ctx, domain.Query{})
	require.NoError(t, err)
	require.Len(t, first, 1000)
	require.Equal(t, "text 0", first[0].Text)

	rest, err := f.svc.Read(ctx, domain.Query{Window: paging.Window{Skip: 1000, Limit: 1000}})
	require.NoError(t, err)
	require.Len(t, rest, 500)
	require.Equal(t, "text 1000", rest[0].Text)
}

func TestRead_TextAndHashFilters(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, in("a", "x", 1))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, in("b", "y", 1))
	require.NoError(t, err)

	got, err := f.svc.Read(ctx, domain.Query{Text: "b"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].Text)

	// disagreeing text and hash filters match nothing
	got, err = f.svc.Read(ctx, domain.Query{Text: "b", Filter: domain.Filter{Hash: digest.XXH3{}.Digest("a")}})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = f.svc.Read(ctx, domain.Query{Filter: domain.Filter{BiasType: "x"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].Text)
}

func TestCreate_ConcurrentSameTextYieldsOneWinner(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, in("same", "x", 1))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case perr.IsCode(err, perr.ErrorCodeConflict):
				conflicts++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, wins)
	require.Equal(t, 31, conflicts)
	require.Equal(t, 1, f.mem.Len())
}

// racyRepo hides the first lookup so Create reaches Insert and trips the unique index
type racyRepo struct {
	repo.Repo[domain.Report]
	hidden bool
}

func (r *racyRepo) FindByHash(ctx context.Context, hash string) (domain.Report, error) {
	if !r.hidden {
		r.hidden = true
		return domain.Report{}, perr.ErrNotFound
	}
	return r.Repo.FindByHash(ctx, hash)
}

type racyUnit struct {
	*repo.Memory[domain.Report]
	r *racyRepo
}

func (u racyUnit) Repo() repo.Repo[domain.Report] { return u.r }

func (u racyUnit) Tx(ctx context.Context, fn func(repo.Repo[domain.Report]) error) error {
	return u.Memory.Tx(ctx, func(r repo.Repo[domain.Report]) error {
		u.r.Repo = r
		return fn(u.r)
	})
}

func TestCreate_UniqueViolationIsReclassified(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	constant := digest.HasherFunc(func(string) string { return "k" })

	mem := repo.NewMemory[domain.Report]()
	require.NoError(t, mem.Repo().Insert(ctx, domain.Report{Hash: "k", Text: "winner"}))

	svc := New(domain.ReportKind, repo.Unit[domain.Report](racyUnit{Memory: mem, r: &racyRepo{}}), Options{Hasher: constant})
	_, err := svc.Create(ctx, in("winner", "x", 1))
	require.True(t, perr.IsCode(err, perr.ErrorCodeConflict), "got %v", err)

	svc = New(domain.ReportKind, repo.Unit[domain.Report](racyUnit{Memory: mem, r: &racyRepo{}}), Options{Hasher: constant})
	_, err = svc.Create(ctx, in("loser", "x", 1))
	require.True(t, perr.IsCode(err, perr.ErrorCodeHashCollision), "got %v", err)
}

func TestOutcomeAndMetrics(t *testing.T) {
	t.Parallel()

	require.Equal(t, metrics.OutcomeOK, Outcome(nil))
	require.Equal(t, metrics.OutcomeConflict, Outcome(perr.Conflictf("x")))
	require.Equal(t, metrics.OutcomeCollision, Outcome(perr.HashCollisionf("x")))
	require.Equal(t, metrics.OutcomeNotFound, Outcome(perr.ErrNotFound))
	require.Equal(t, metrics.OutcomeInvalid, Outcome(perr.Validationf("x")))
	require.Equal(t, metrics.OutcomeError, Outcome(errors.New("boom")))

	reg := prometheus.NewRegistry()
	svc := New(domain.ReportKind, repo.Unit[domain.Report](repo.NewMemory[domain.Report]()), Options{Ops: metrics.NewOps(reg)})
	_, err := svc.Create(context.Background(), in("m", "x", 1))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), in("m", "x", 1))
	require.Error(t, err)

	n, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range n {
		if mf.GetName() != "biasdb_entry_ops_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	require.Equal(t, 2.0, total)
}

func TestNew_PanicsWithoutUnit(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() {
		New[domain.Report, domain.ReportInput, domain.ReportPatch](domain.ReportKind, nil, Options{})
	})
}
