package module

import (
	"testing"
	"time"

	"biasdb/internal/platform/config"
	"biasdb/internal/platform/paging"

	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	cfg := config.New().Prefix("ENTRIES_TEST_")

	o := FromConfig(cfg)
	require.Equal(t, paging.MaxLimit, o.MaxLimit)
	require.Equal(t, 5*time.Second, o.StatementTimeout)

	t.Setenv("ENTRIES_TEST_MAX_LIMIT", "50")
	t.Setenv("ENTRIES_TEST_STMT_TIMEOUT", "250ms")
	o = FromConfig(cfg)
	require.Equal(t, 50, o.MaxLimit)
	require.Equal(t, 250*time.Millisecond, o.StatementTimeout)
	require.Equal(t, paging.Limits{Default: paging.DefaultLimit, Max: 50}, o.limits())
}
