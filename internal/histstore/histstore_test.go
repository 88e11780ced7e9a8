package histstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReplaceAndQueryRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runs := []Run{
		{RunID: "r1", Status: "succeeded", StartedAt: "2025-11-01T10:00:00Z", DurationMs: 1200},
		{RunID: "r2", Status: "failed", StartedAt: "2025-11-02T10:00:00Z", DurationMs: 300, Parameters: `{"env":"prod"}`},
	}
	require.NoError(t, s.ReplaceRuns(ctx, "wf-1", runs))

	got, err := s.Runs(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest start first.
	assert.Equal(t, "r2", got[0].RunID)
	assert.Equal(t, `{"env":"prod"}`, got[0].Parameters)
	assert.Equal(t, "r1", got[1].RunID)
}

func TestReplaceRunsOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceRuns(ctx, "wf-1", []Run{{RunID: "old", Status: "succeeded"}}))
	require.NoError(t, s.ReplaceRuns(ctx, "wf-1", []Run{{RunID: "new", Status: "running"}}))

	got, err := s.Runs(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].RunID)
}

func TestRunsIsolatedPerWorkflow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceRuns(ctx, "wf-a", []Run{{RunID: "ra", Status: "succeeded"}}))
	require.NoError(t, s.ReplaceRuns(ctx, "wf-b", []Run{{RunID: "rb", Status: "succeeded"}}))

	got, err := s.Runs(ctx, "wf-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ra", got[0].RunID)
}

func TestRunsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Runs(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPruneZeroRetentionKeepsAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceRuns(ctx, "wf-1", []Run{{RunID: "r1", Status: "succeeded"}}))
	require.NoError(t, s.Prune(ctx, 0))

	got, err := s.Runs(ctx, "wf-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPruneKeepsFreshRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceRuns(ctx, "wf-1", []Run{{RunID: "r1", Status: "succeeded"}}))
	require.NoError(t, s.Prune(ctx, 24*time.Hour))

	got, err := s.Runs(ctx, "wf-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
