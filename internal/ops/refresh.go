package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runger/flowbridge/internal/grouppath"
	"github.com/runger/flowbridge/internal/meta"
)

// RefreshFolder re-materializes a workspace folder from its remote group.
// Sequence: clear the folder (preserving the sync marker), invoke the remote
// sync, then hoist the contents of a nested subfolder when the tool created
// one named after the group's last segment. Reorganization failures are
// logged, never fatal.
func (o *Ops) RefreshFolder(ctx context.Context, dir string) error {
	if err := o.requireWorkspace(); err != nil {
		return err
	}
	info, err := meta.Load(o.Workspace)
	if err != nil {
		return err
	}
	if info.GroupName == "" {
		return preconditionf("sync marker is missing group_name")
	}

	base := grouppath.Normalize(info.GroupName)
	if err := base.Validate(); err != nil {
		return fmt.Errorf("base group %q: %w", info.GroupName, err)
	}

	if dir == "" {
		dir = o.Workspace
	}
	full, err := o.groupForDir(base, dir)
	if err != nil {
		return err
	}

	if err := clearDir(dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}

	interp, err := o.resolve()
	if err != nil {
		return err
	}
	req := o.toolRequest(interp, dir, "sync", full.String())
	if _, err := o.Runner.Stream(ctx, req); err != nil {
		return err
	}

	o.hoistNested(dir, full)
	return nil
}

// groupForDir maps a workspace folder to its remote group: the base group
// extended by the folder's path relative to the workspace root.
func (o *Ops) groupForDir(base grouppath.Path, dir string) (grouppath.Path, error) {
	rel, err := filepath.Rel(o.Workspace, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return grouppath.Path{}, preconditionf("%s is outside the workspace", dir)
	}
	if rel == "." {
		return base, nil
	}

	relPath := grouppath.Normalize(filepath.ToSlash(rel))
	if err := relPath.Validate(); err != nil {
		return grouppath.Path{}, fmt.Errorf("folder path %q: %w", rel, err)
	}

	full := grouppath.FullName(base, relPath)
	if err := full.Validate(); err != nil {
		return grouppath.Path{}, fmt.Errorf("group path %q: %w", full.String(), err)
	}
	return full, nil
}

// clearDir removes the directory's contents, preserving the sync marker.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Name() == meta.MarkerName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// hoistNested flattens the extra nesting level some tool versions create:
// when dir contains a subfolder named after the group's last segment, its
// contents move up one level and the empty subfolder is removed. Best-effort.
func (o *Ops) hoistNested(dir string, group grouppath.Path) {
	if len(group.Segments) == 0 {
		return
	}
	nested := filepath.Join(dir, group.Segments[len(group.Segments)-1])
	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		return
	}

	entries, err := os.ReadDir(nested)
	if err != nil {
		o.Logger.Warn("failed to reorganize synced folder", "path", nested, "error", err)
		return
	}
	for _, entry := range entries {
		from := filepath.Join(nested, entry.Name())
		to := filepath.Join(dir, entry.Name())
		if err := os.Rename(from, to); err != nil {
			o.Logger.Warn("failed to hoist synced entry", "from", from, "to", to, "error", err)
			return
		}
	}
	if err := os.Remove(nested); err != nil {
		o.Logger.Warn("failed to remove empty synced subfolder", "path", nested, "error", err)
	}
}
