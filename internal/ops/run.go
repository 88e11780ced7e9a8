package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/runger/flowbridge/internal/form"
	"github.com/runger/flowbridge/internal/payload"
)

// FetchRunParameters asks the tool which parameters a workflow accepts.
// Any failure falls back to an empty parameter set rather than aborting the
// interactive flow; the failure is logged.
func (o *Ops) FetchRunParameters(ctx context.Context, id string) []form.Param {
	interp, err := o.resolve()
	if err != nil {
		o.Logger.Warn("interpreter resolution failed, using empty run parameters", "error", err)
		return nil
	}

	req := o.toolRequest(interp, o.Workspace, "run-view-parameters", id)
	res, err := o.Runner.Run(ctx, req)
	if err != nil {
		o.Logger.Warn("parameter fetch failed, using empty run parameters", "workflow_id", id, "error", err)
		return nil
	}

	params, err := decodeRunParameters(res.Stdout)
	if err != nil {
		o.Logger.Warn("parameter payload unreadable, using empty run parameters", "workflow_id", id, "error", err)
		return nil
	}
	return params
}

// SubmitRun requests execution of a workflow with the given parameter values.
// Values are written to a uniquely named temp file passed to the tool; the
// file is removed best-effort once the subprocess has exited.
func (o *Ops) SubmitRun(ctx context.Context, id, project string, values map[string]string) error {
	interp, err := o.resolve()
	if err != nil {
		return err
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding run parameters: %w", err)
	}

	// Unique per invocation so concurrent run requests never collide.
	paramsFile := filepath.Join(os.TempDir(), "flowbridge-params-"+uuid.NewString()+ArtifactExt)
	if err := os.WriteFile(paramsFile, data, 0600); err != nil {
		return fmt.Errorf("writing run parameters: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(paramsFile); rmErr != nil && !os.IsNotExist(rmErr) {
			o.Logger.Warn("failed to remove run parameter file", "path", paramsFile, "error", rmErr)
		}
	}()

	args := []string{id, "--parameters", paramsFile}
	if project != "" {
		args = append(args, "--project", project)
	}
	req := o.toolRequest(interp, o.Workspace, "run", args...)
	_, err = o.Runner.Stream(ctx, req)
	return err
}

// decodeRunParameters accepts either {"parameters": [...]} or a bare array of
// {"name": ..., "default": ...} objects.
func decodeRunParameters(stdout string) ([]form.Param, error) {
	raw, err := payload.Extract(stdout)
	if err != nil {
		return nil, err
	}

	type toolParam struct {
		Name    string `json:"name"`
		Default string `json:"default"`
	}
	var wrapped struct {
		Parameters []toolParam `json:"parameters"`
	}
	var entries []toolParam
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Parameters != nil {
		entries = wrapped.Parameters
	} else if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding parameter payload: %w", err)
	}

	params := make([]form.Param, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		params = append(params, form.Param{Name: e.Name, Default: e.Default})
	}
	return params, nil
}
