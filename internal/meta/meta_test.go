package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMarker(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MarkerName), []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir, `{
		"sync_info": {
			"group_id": "42",
			"group_name": "proj/groupA",
			"project_name": "proj",
			"sync_date": "2025-11-03T10:15:00Z"
		}
	}`)

	info, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "42", info.GroupID)
	assert.Equal(t, "proj/groupA", info.GroupName)
	assert.Equal(t, "proj", info.ProjectName)
	assert.Equal(t, time.Date(2025, 11, 3, 10, 15, 0, 0, time.UTC), info.SyncTime())
}

func TestLoadMissingMarker(t *testing.T) {
	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrNoMarker)
}

func TestLoadMalformedMarker(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir, "{not json")

	_, err := Load(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMarker)
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeMarker(t, root, `{"sync_info": {"group_name": "proj/groupA"}}`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, root, FindRoot(nested))
	assert.Equal(t, root, FindRoot(root))
}

func TestFindRootNoMarker(t *testing.T) {
	assert.Empty(t, FindRoot(t.TempDir()))
}

func TestSyncTimeInvalid(t *testing.T) {
	info := &SyncInfo{SyncDate: "yesterday"}
	assert.True(t, info.SyncTime().IsZero())
}
