package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/runger/flowbridge/internal/payload"
)

// Render asks the tool for a workflow's graph representation and returns the
// JSON payload embedded in its output.
func (o *Ops) Render(ctx context.Context, file string) (json.RawMessage, error) {
	if err := requireSourceFile(file); err != nil {
		return nil, err
	}
	interp, err := o.resolve()
	if err != nil {
		return nil, err
	}

	req := o.toolRequest(interp, filepath.Dir(file), "render", filepath.Base(file))
	res, err := o.Runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	graph, err := payload.Extract(res.Stdout)
	if err != nil {
		if errors.Is(err, payload.ErrNoPayload) {
			return nil, fmt.Errorf("render completed but produced no graph payload: %w", err)
		}
		return nil, err
	}
	return graph, nil
}
