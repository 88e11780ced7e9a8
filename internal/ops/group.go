package ops

import (
	"context"
	"fmt"
	"os"

	"github.com/runger/flowbridge/internal/grouppath"
	"github.com/runger/flowbridge/internal/meta"
)

// CreateGroup creates a remote group under the workspace's base group and
// materializes the matching local directory. The entered name is combined
// with the base per grouppath.FullName and validated before anything touches
// the filesystem or the remote service.
func (o *Ops) CreateGroup(ctx context.Context, name string) (string, string, error) {
	if err := o.requireWorkspace(); err != nil {
		return "", "", err
	}
	info, err := meta.Load(o.Workspace)
	if err != nil {
		return "", "", err
	}
	if info.GroupName == "" {
		return "", "", preconditionf("sync marker is missing group_name")
	}

	base := grouppath.Normalize(info.GroupName)
	if err := base.Validate(); err != nil {
		return "", "", fmt.Errorf("base group %q: %w", info.GroupName, err)
	}

	input := grouppath.Normalize(name)
	if input.IsEmpty() {
		return "", "", preconditionf("group name must not be empty")
	}
	if err := input.Validate(); err != nil {
		return "", "", fmt.Errorf("group name %q: %w", name, err)
	}

	full := grouppath.FullName(base, input)
	if err := full.Validate(); err != nil {
		return "", "", fmt.Errorf("group path %q: %w", full.String(), err)
	}

	interp, err := o.resolve()
	if err != nil {
		return "", "", err
	}
	req := o.toolRequest(interp, o.Workspace, "create-group", full.String())
	if _, err := o.Runner.Run(ctx, req); err != nil {
		return "", "", err
	}

	localDir := grouppath.LocalDir(o.Workspace, base, full)
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return "", "", fmt.Errorf("creating local group directory: %w", err)
	}

	return full.String(), localDir, nil
}
