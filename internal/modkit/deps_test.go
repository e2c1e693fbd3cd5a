package modkit

import (
	"testing"

	"biasdb/internal/core/digest"
	"biasdb/internal/platform/store"

	"github.com/stretchr/testify/require"
)

func TestDeps_Memory(t *testing.T) {
	t.Parallel()
	var d Deps
	require.True(t, d.Memory(), "zero Deps has no DB so entries stay in memory")

	d.Driver = store.DriverSQLite
	require.True(t, d.Memory(), "a driver without a DB is still memory")
}

func TestDeps_HasherOrDefault(t *testing.T) {
	t.Parallel()
	var d Deps
	require.Equal(t, digest.Default().Digest("x"), d.HasherOrDefault().Digest("x"))

	d.Hasher = digest.HasherFunc(func(string) string { return "same" })
	require.Equal(t, "same", d.HasherOrDefault().Digest("x"))
}
