// Package meta reads the workspace sync metadata marker.
//
// The marker is written by the workflow tool when a workspace is materialized
// from a remote group. flowbridge only ever reads it; the folder-sync and
// group-creation operations refuse to run without it.
package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// MarkerName is the marker file name at the workspace root.
const MarkerName = ".wfsync.json"

// ErrNoMarker is returned when the workspace has no sync marker.
var ErrNoMarker = errors.New("workspace has no sync metadata marker")

// SyncInfo records which remote group and project the workspace was
// materialized from.
type SyncInfo struct {
	GroupID     string `json:"group_id"`
	GroupName   string `json:"group_name"`
	ProjectName string `json:"project_name"`
	SyncDate    string `json:"sync_date"`
}

type marker struct {
	SyncInfo SyncInfo `json:"sync_info"`
}

// Load reads the sync marker from the workspace root. A missing file yields
// ErrNoMarker; a present but unreadable or malformed file is an error in its
// own right so the user sees what is wrong with the marker.
func Load(root string) (*SyncInfo, error) {
	path := filepath.Join(root, MarkerName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w (expected %s)", ErrNoMarker, path)
		}
		return nil, fmt.Errorf("reading sync marker: %w", err)
	}

	var m marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing sync marker %s: %w", path, err)
	}
	return &m.SyncInfo, nil
}

// FindRoot walks up from start looking for the directory holding the sync
// marker. Returns "" when no ancestor has one.
func FindRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, MarkerName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// SyncTime parses the marker's sync date. The zero time is returned when the
// field is absent or not RFC 3339.
func (s *SyncInfo) SyncTime() time.Time {
	t, err := time.Parse(time.RFC3339, s.SyncDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
