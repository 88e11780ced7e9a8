package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "wftool", cfg.Python.ToolModule)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
python:
  interpreter: "/opt/py/bin/python3"
  tool_module: customtool
log:
  level: debug
history:
  retention_days: 7
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/py/bin/python3", cfg.Python.Interpreter)
	assert.Equal(t, "customtool", cfg.Python.ToolModule)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.History.RetentionDays)
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Python.Interpreter = "py -3"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "py -3", loaded.Python.Interpreter)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FLOWBRIDGE_PYTHON", "/env/python")
	t.Setenv("FLOWBRIDGE_DEBUG", "1")
	t.Setenv("WFTOOL_PROJECT", "env-project")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "/env/python", cfg.Python.Interpreter)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "env-project", cfg.Workspace.DefaultProject)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Python.ToolModule = ""
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.History.RetentionDays = -1
	require.Error(t, cfg.Validate())
}

func TestDefaultPaths(t *testing.T) {
	p := DefaultPaths()
	assert.NotEmpty(t, p.ConfigDir)
	assert.Equal(t, filepath.Join(p.ConfigDir, "config.yaml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(p.DataDir, "history.db"), p.DatabaseFile())
}
