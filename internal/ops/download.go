package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Download fetches a workflow's artifact from the remote service and converts
// it back to source form. Sequence: download into dir, pick the newest
// artifact by modification time, convert with from-json, then best-effort
// delete the intermediate artifact. Returns the converted source path.
func (o *Ops) Download(ctx context.Context, id, dir string) (string, error) {
	if id == "" {
		return "", preconditionf("no workflow identifier given")
	}
	if dir == "" {
		if err := o.requireWorkspace(); err != nil {
			return "", err
		}
		dir = o.Workspace
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", preconditionf("target directory %s does not exist", dir)
	}

	interp, err := o.resolve()
	if err != nil {
		return "", err
	}

	if _, err := o.Runner.Stream(ctx, o.toolRequest(interp, dir, "download", id)); err != nil {
		return "", err
	}

	artifact, err := newestArtifact(dir)
	if err != nil {
		return "", fmt.Errorf("download completed but %w", err)
	}

	if _, err := o.Runner.Stream(ctx, o.toolRequest(interp, dir, "from-json", filepath.Base(artifact))); err != nil {
		return "", err
	}

	source := strings.TrimSuffix(artifact, ArtifactExt) + SourceExt
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("conversion completed but %s was not created", source)
	}

	// Intermediate artifact cleanup is best-effort.
	if err := os.Remove(artifact); err != nil {
		o.Logger.Warn("failed to remove intermediate artifact", "path", artifact, "error", err)
	}

	return source, nil
}
