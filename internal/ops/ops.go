// Package ops implements the operation orchestrators.
//
// Each orchestrator is a fixed sequence: validate preconditions, resolve the
// interpreter, build argv vectors, execute in dependency order, and interpret
// output where it is consumed as data. No retries anywhere; a failed
// subprocess is never re-attempted. Only cleanup-phase failures are swallowed
// (logged as warnings).
package ops

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/runger/flowbridge/internal/config"
	"github.com/runger/flowbridge/internal/execute"
	"github.com/runger/flowbridge/internal/histstore"
	"github.com/runger/flowbridge/internal/ident"
	"github.com/runger/flowbridge/internal/python"
)

// Workflow file conventions: a source file maps 1:1 to a build artifact by
// suffix substitution in the same directory.
const (
	SourceExt   = ".py"
	ArtifactExt = ".json"
)

// Runner executes subprocess requests. Run blocks and returns captured
// output; Stream blocks but forwards output to the log sink as it is
// produced. *execute.Executor satisfies this.
type Runner interface {
	Run(ctx context.Context, req execute.Request) (execute.Result, error)
	Stream(ctx context.Context, req execute.Request) (execute.Result, error)
}

// PreconditionError reports a failed precondition check. Orchestrators return
// it before any subprocess runs.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// Ops holds the collaborators shared by all orchestrators. All references are
// injected; there is no package-level state.
type Ops struct {
	Config    *config.Config
	Runner    Runner
	Logger    *slog.Logger
	Store     *histstore.Store // optional history cache
	Workspace string           // workspace root ("" = no workspace open)
}

// New creates an Ops with nil-safe defaults.
func New(cfg *config.Config, runner Runner, logger *slog.Logger, store *histstore.Store, workspace string) *Ops {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ops{
		Config:    cfg,
		Runner:    runner,
		Logger:    logger,
		Store:     store,
		Workspace: workspace,
	}
}

// resolve determines the interpreter for this invocation. Resolution is
// repeated every call; workspace state may have changed.
func (o *Ops) resolve() (python.Interpreter, error) {
	return python.Resolve(o.Config.Python.Interpreter, o.Workspace)
}

// toolRequest builds the subprocess request for one tool subcommand.
func (o *Ops) toolRequest(interp python.Interpreter, dir, subcommand string, args ...string) execute.Request {
	return execute.Request{
		Argv:       interp.Command(o.Config.Python.ToolModule, append([]string{subcommand}, args...)...),
		Dir:        dir,
		PathPrefix: interp.VenvBin,
	}
}

// requireSourceFile checks that path names an existing workflow source file.
func requireSourceFile(path string) error {
	if path == "" {
		return preconditionf("no workflow file given")
	}
	if !strings.HasSuffix(path, SourceExt) {
		return preconditionf("%s is not a workflow source file (expected %s)", path, SourceExt)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return preconditionf("workflow file %s does not exist", path)
		}
		return fmt.Errorf("checking workflow file: %w", err)
	}
	if info.IsDir() {
		return preconditionf("%s is a directory", path)
	}
	return nil
}

// requireWorkspace checks that a workspace root is configured and exists.
func (o *Ops) requireWorkspace() error {
	if o.Workspace == "" {
		return preconditionf("no workspace open")
	}
	info, err := os.Stat(o.Workspace)
	if err != nil || !info.IsDir() {
		return preconditionf("workspace %s does not exist", o.Workspace)
	}
	return nil
}

// WorkflowIDFromArg resolves a command argument that is either a workflow
// identifier or a source file containing a workflow_id assignment.
func (o *Ops) WorkflowIDFromArg(arg string) (string, error) {
	if !strings.HasSuffix(arg, SourceExt) {
		if arg == "" {
			return "", preconditionf("no workflow identifier given")
		}
		return arg, nil
	}

	if err := requireSourceFile(arg); err != nil {
		return "", err
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", arg, err)
	}
	id, ok := ident.WorkflowID(string(data))
	if !ok {
		return "", preconditionf("%s contains no workflow_id assignment", arg)
	}
	return id, nil
}

// ArtifactPath maps a source file to its build artifact by suffix
// substitution.
func ArtifactPath(sourceFile string) string {
	return strings.TrimSuffix(sourceFile, SourceExt) + ArtifactExt
}

// newestArtifact returns the most recently modified artifact file in dir.
func newestArtifact(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	var newest string
	var newestInfo fs.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ArtifactExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newestInfo == nil || info.ModTime().After(newestInfo.ModTime()) {
			newest = filepath.Join(dir, entry.Name())
			newestInfo = info
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no %s artifact found in %s", ArtifactExt, dir)
	}
	return newest, nil
}
