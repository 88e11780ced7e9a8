package ops

import (
	"context"
	"os"
	"path/filepath"
)

// Build compiles a workflow source file. The subprocess runs in the file's
// directory with the bare file name as argument. Returns the path of the
// build artifact when the tool produced one next to the source; an absent
// artifact is not an error.
func (o *Ops) Build(ctx context.Context, file string) (string, error) {
	if err := requireSourceFile(file); err != nil {
		return "", err
	}
	interp, err := o.resolve()
	if err != nil {
		return "", err
	}

	req := o.toolRequest(interp, filepath.Dir(file), "build", filepath.Base(file))
	if _, err := o.Runner.Stream(ctx, req); err != nil {
		return "", err
	}

	artifact := ArtifactPath(file)
	if _, err := os.Stat(artifact); err != nil {
		return "", nil
	}
	return artifact, nil
}

// Push deploys a workflow to the remote execution service.
func (o *Ops) Push(ctx context.Context, file string) error {
	if err := requireSourceFile(file); err != nil {
		return err
	}
	interp, err := o.resolve()
	if err != nil {
		return err
	}

	req := o.toolRequest(interp, filepath.Dir(file), "push", filepath.Base(file))
	_, err = o.Runner.Stream(ctx, req)
	return err
}

// BuildPush builds and then deploys. The push step is never attempted unless
// the build fully succeeded; a push failure does not roll back build
// artifacts.
func (o *Ops) BuildPush(ctx context.Context, file string) error {
	if _, err := o.Build(ctx, file); err != nil {
		return err
	}
	return o.Push(ctx, file)
}
