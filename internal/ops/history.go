package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/runger/flowbridge/internal/histstore"
	"github.com/runger/flowbridge/internal/payload"
)

// toolRun mirrors one history entry as reported by the tool.
type toolRun struct {
	RunID      string          `json:"run_id"`
	Status     string          `json:"status"`
	StartedAt  string          `json:"started_at"`
	DurationMs int64           `json:"duration_ms"`
	Parameters json.RawMessage `json:"parameters"`
}

// History fetches the execution history for a workflow, identified directly
// or via a source file. The fetched set replaces the local cache when one is
// configured; cache failures are warnings, never fatal.
func (o *Ops) History(ctx context.Context, idOrFile string) ([]histstore.Run, string, error) {
	id, err := o.WorkflowIDFromArg(idOrFile)
	if err != nil {
		return nil, "", err
	}
	interp, err := o.resolve()
	if err != nil {
		return nil, "", err
	}

	req := o.toolRequest(interp, o.Workspace, "get-history", id)
	res, err := o.Runner.Run(ctx, req)
	if err != nil {
		return nil, id, err
	}

	runs, err := decodeHistory(res.Stdout)
	if err != nil {
		return nil, id, err
	}

	if o.Store != nil {
		if cacheErr := o.Store.ReplaceRuns(ctx, id, runs); cacheErr != nil {
			o.Logger.Warn("failed to cache execution history", "workflow_id", id, "error", cacheErr)
		}
	}
	return runs, id, nil
}

// CachedHistory returns the locally cached history for a workflow.
func (o *Ops) CachedHistory(ctx context.Context, idOrFile string) ([]histstore.Run, string, error) {
	id, err := o.WorkflowIDFromArg(idOrFile)
	if err != nil {
		return nil, "", err
	}
	if o.Store == nil {
		return nil, id, preconditionf("history cache is disabled")
	}
	runs, err := o.Store.Runs(ctx, id)
	return runs, id, err
}

// decodeHistory accepts either {"runs": [...]} or a bare array.
func decodeHistory(stdout string) ([]histstore.Run, error) {
	raw, err := payload.Extract(stdout)
	if err != nil {
		if errors.Is(err, payload.ErrNoPayload) {
			return nil, fmt.Errorf("history fetch completed but produced no JSON payload: %w", err)
		}
		return nil, err
	}

	var wrapped struct {
		Runs []toolRun `json:"runs"`
	}
	var entries []toolRun
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Runs != nil {
		entries = wrapped.Runs
	} else if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding history payload: %w", err)
	}

	runs := make([]histstore.Run, 0, len(entries))
	for _, e := range entries {
		runs = append(runs, histstore.Run{
			RunID:      e.RunID,
			Status:     e.Status,
			StartedAt:  e.StartedAt,
			DurationMs: e.DurationMs,
			Parameters: string(e.Parameters),
		})
	}
	return runs, nil
}
