package python

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeVenv creates <dir>/.venv/bin/python (or Scripts/python.exe) and returns
// the binary directory.
func makeVenv(t *testing.T, dir string, sub ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{dir, ".venv"}, sub...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!"), 0755))
	return filepath.Dir(path)
}

func TestResolveExplicit(t *testing.T) {
	interp, err := Resolve("/opt/python/bin/python3.12", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/python/bin/python3.12"}, interp.Argv)
	assert.Empty(t, interp.VenvBin)
}

func TestResolveExplicitWithArgs(t *testing.T) {
	interp, err := Resolve("py -3", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"py", "-3"}, interp.Argv)
}

func TestResolveExplicitWithSpacesInPath(t *testing.T) {
	interp, err := Resolve(`"/opt/my python/python3"`, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/my python/python3"}, interp.Argv)
}

func TestResolveExplicitMalformed(t *testing.T) {
	_, err := Resolve(`python3 "unterminated`, t.TempDir())
	require.Error(t, err)
}

// An explicit value equal to the bare default is treated as not configured,
// so venv detection still applies.
func TestResolveExplicitEqualToDefault(t *testing.T) {
	dir := t.TempDir()
	bin := makeVenv(t, dir, "bin", "python")

	interp, err := Resolve(DefaultName(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultName()}, interp.Argv)
	assert.Equal(t, bin, interp.VenvBin)
}

func TestResolveVenv(t *testing.T) {
	dir := t.TempDir()
	bin := makeVenv(t, dir, "bin", "python")

	interp, err := Resolve("", dir)
	require.NoError(t, err)
	// Bare name, not the venv path: PATH precedence does the rest.
	assert.Equal(t, []string{DefaultName()}, interp.Argv)
	assert.Equal(t, bin, interp.VenvBin)
}

func TestResolveVenvWindowsLayout(t *testing.T) {
	dir := t.TempDir()
	bin := makeVenv(t, dir, "Scripts", "python.exe")

	interp, err := Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, bin, interp.VenvBin)
}

func TestResolveDefault(t *testing.T) {
	interp, err := Resolve("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultName()}, interp.Argv)
	assert.Empty(t, interp.VenvBin)
}

func TestVenvBinDirEmptyRoot(t *testing.T) {
	_, ok := VenvBinDir("")
	assert.False(t, ok)
}

func TestCommand(t *testing.T) {
	interp := Interpreter{Argv: []string{"py", "-3"}}
	argv := interp.Command("wftool", "build", "report with spaces.py")
	assert.Equal(t, []string{"py", "-3", "-m", "wftool", "build", "report with spaces.py"}, argv)
}
