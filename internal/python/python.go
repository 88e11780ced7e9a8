// Package python resolves which interpreter runs the workflow tool.
//
// Resolution order: an explicitly configured interpreter, then a virtual
// environment under the workspace root, then the platform default name.
// Resolution is deterministic for a given configuration and workspace state
// and is repeated on every invocation; workspace state may change between
// calls, so nothing is cached.
package python

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/shlex"
)

// DefaultName is the bare interpreter name used when nothing more specific is
// configured or detected.
func DefaultName() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// venvSubpaths are the platform-conventional interpreter locations probed
// under <workspace>/.venv.
var venvSubpaths = [][]string{
	{"bin", "python"},
	{"Scripts", "python.exe"},
}

// Interpreter is a resolved interpreter invocation. Argv carries the command
// and any leading arguments as a vector; nothing is ever joined into a shell
// string. VenvBin, when non-empty, is a virtual-environment binary directory
// the executor must prepend to PATH so the bare name resolves inside it.
type Interpreter struct {
	Argv    []string
	VenvBin string
}

// Command builds the full argv for invoking a subcommand of the workflow
// tool: <interpreter...> -m <module> <args...>.
func (i Interpreter) Command(module string, args ...string) []string {
	argv := make([]string, 0, len(i.Argv)+2+len(args))
	argv = append(argv, i.Argv...)
	argv = append(argv, "-m", module)
	argv = append(argv, args...)
	return argv
}

// Resolve determines the interpreter for a workspace. explicit is the
// configured override (may contain arguments, e.g. "py -3"); empty means not
// configured. Absence of a venv or override is never an error; resolution
// falls through to the default name.
func Resolve(explicit, workspaceRoot string) (Interpreter, error) {
	if explicit != "" && explicit != DefaultName() {
		argv, err := shlex.Split(explicit)
		if err != nil {
			return Interpreter{}, fmt.Errorf("splitting configured interpreter %q: %w", explicit, err)
		}
		if len(argv) == 0 {
			return Interpreter{}, fmt.Errorf("configured interpreter %q is blank", explicit)
		}
		return Interpreter{Argv: argv}, nil
	}

	if bin, ok := VenvBinDir(workspaceRoot); ok {
		// Bare name on purpose: the executor's PATH prefix makes it
		// resolve to the venv interpreter.
		return Interpreter{Argv: []string{DefaultName()}, VenvBin: bin}, nil
	}

	return Interpreter{Argv: []string{DefaultName()}}, nil
}

// VenvBinDir probes for a virtual-environment interpreter under the workspace
// root and returns its binary directory.
func VenvBinDir(workspaceRoot string) (string, bool) {
	if workspaceRoot == "" {
		return "", false
	}
	venv := filepath.Join(workspaceRoot, ".venv")
	for _, sub := range venvSubpaths {
		candidate := filepath.Join(append([]string{venv}, sub...)...)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return filepath.Dir(candidate), true
		}
	}
	return "", false
}
