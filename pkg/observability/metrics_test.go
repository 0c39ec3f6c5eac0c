package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/observability"
)

func TestMetrics_RecordPuzzleEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg, func() int { return 3 })

	p, err := strata.New(strata.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	ctx := context.Background()

	p.Drop(ctx, "p1", 0)
	p.Drop(ctx, "p2", 0)
	p.Drop(ctx, "p1", 1)
	p.Drop(ctx, "p1", 0)
	p.Undo(ctx)
	p.Redo(ctx)
	p.Undo(ctx)
	p.Check(ctx)
	p.PointerDown(ctx, "p3")
	p.PointerCancel(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commits.WithLabelValues("place", "api")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commits.WithLabelValues("swap", "api")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commits.WithLabelValues("replace", "api")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.History.WithLabelValues("undo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.History.WithLabelValues("redo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.WithLabelValues("incomplete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cancels))

	expected := `
# HELP strata_active_sessions Number of live puzzle sessions
# TYPE strata_active_sessions gauge
strata_active_sessions 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "strata_active_sessions"))
}

func TestCombine(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg, nil)
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf, slog.LevelDebug)

	hooks := observability.Combine(m.Hooks(), observability.LoggingHooks(logger))
	p, err := strata.New(strata.WithID("combo"), strata.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	p.Drop(context.Background(), "p1", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commits.WithLabelValues("place", "api")))
	assert.Contains(t, buf.String(), `"msg":"placement_commit"`)
	assert.Contains(t, buf.String(), `"puzzle":"combo"`)
}

func TestCombine_Empty(t *testing.T) {
	hooks := observability.Combine()
	assert.Nil(t, hooks.OnCommit)
	assert.Nil(t, hooks.OnCancel)
}
