// Package execute runs workflow tool subcommands as subprocesses.
//
// Commands are argv vectors passed straight to the spawn primitive; no shell
// is ever involved, so filenames and identifiers need no quoting. The
// executor inherits the host environment, prepends a virtual-environment
// binary directory to PATH when one was detected, and forces the child's
// stream encoding. Output is captured in full and mirrored to a shared
// append-safe log sink.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// encodingVar forces UTF-8 on the child's standard streams so payload bytes
// survive the round trip on every platform.
const encodingVar = "PYTHONIOENCODING=utf-8"

// Request describes one subprocess invocation. It is immutable once built and
// constructed fresh per invocation.
type Request struct {
	// Argv is the full command vector; Argv[0] is the executable.
	Argv []string

	// Dir is the working directory for the child.
	Dir string

	// Env holds environment overrides layered over the inherited host
	// environment.
	Env map[string]string

	// PathPrefix, when non-empty, is prepended to the child's PATH. Used
	// for virtual-environment binary directories.
	PathPrefix string
}

// Result captures a finished subprocess. It is never mutated after capture.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Summary returns the first non-empty line of stderr, falling back to stdout.
// Used for single-line user-facing failure reports.
func (r Result) Summary() string {
	for _, text := range []string{r.Stderr, r.Stdout} {
		for _, line := range strings.Split(text, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// ExitError is returned when the child exits non-zero or fails to spawn.
// Callers can extract the child's stdout, stderr, and exit code from it.
type ExitError struct {
	Result Result
	Argv   []string
	Err    error
}

func (e *ExitError) Error() string {
	name := "command"
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	if summary := e.Result.Summary(); summary != "" {
		return fmt.Sprintf("%s exited with code %d: %s", name, e.Result.ExitCode, summary)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", name, e.Err)
	}
	return fmt.Sprintf("%s exited with code %d", name, e.Result.ExitCode)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Executor runs requests. The sink and notifier are injected collaborators;
// there is no package-level state.
type Executor struct {
	Sink     *Sink
	Notifier Notifier
	Logger   *slog.Logger

	process ProcessController
}

// New creates an executor writing to sink. A nil sink discards output; a nil
// notifier is replaced with the no-op notifier; a nil logger discards logs.
func New(sink *Sink, notifier Notifier, logger *slog.Logger) *Executor {
	if sink == nil {
		sink = NewSink(io.Discard)
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		Sink:     sink,
		Notifier: notifier,
		Logger:   logger,
		process:  NewProcessController(),
	}
}

// Run executes the request and blocks until the child exits. Captured output
// is forwarded to the sink after completion and the full Result is returned
// to the caller for inspection. On non-zero exit or spawn failure the error
// is an *ExitError carrying the Result.
func (e *Executor) Run(ctx context.Context, req Request) (Result, error) {
	return e.run(ctx, req, false)
}

// Pending is a subprocess started in async mode.
type Pending struct {
	done chan struct{}
	res  Result
	err  error
}

// Wait blocks until the child exits and returns its result.
func (p *Pending) Wait() (Result, error) {
	<-p.done
	return p.res, p.err
}

// Done returns a channel closed when the child has exited.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Stream executes the request in async mode and waits for it: output reaches
// the sink incrementally while the child runs. Used where the caller needs
// live output but not the latency overlap of Start.
func (e *Executor) Stream(ctx context.Context, req Request) (Result, error) {
	return e.Start(ctx, req).Wait()
}

// Start executes the request without blocking the caller. Output is forwarded
// to the sink incrementally as the child produces it.
func (e *Executor) Start(ctx context.Context, req Request) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.res, p.err = e.run(ctx, req, true)
	}()
	return p
}

func (e *Executor) run(ctx context.Context, req Request, stream bool) (Result, error) {
	started := time.Now()

	if len(req.Argv) == 0 {
		err := &ExitError{Result: Result{ExitCode: 1}, Err: errors.New("empty argv")}
		e.Notifier.Failure(err.Error())
		return err.Result, err
	}

	//nolint:gosec // argv is assembled by the orchestrators, never a shell string.
	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir
	cmd.Env = buildEnv(req)

	var stdout, stderr bytes.Buffer
	if stream {
		cmd.Stdout = io.MultiWriter(&stdout, e.Sink)
		cmd.Stderr = io.MultiWriter(&stderr, e.Sink)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	e.Logger.Debug("spawning subprocess", "argv", req.Argv, "dir", req.Dir)

	waitErr := e.startAndWait(ctx, cmd)

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCodeFromError(waitErr),
	}

	if !stream {
		e.forwardCaptured(res)
	}

	name := req.Argv[0]
	if waitErr != nil {
		err := &ExitError{Result: res, Argv: req.Argv, Err: waitErr}
		e.Logger.Warn("subprocess failed",
			"argv", req.Argv,
			"exit_code", res.ExitCode,
			"duration_ms", time.Since(started).Milliseconds(),
		)
		e.Notifier.Failure(err.Error())
		return res, err
	}

	e.Logger.Debug("subprocess succeeded",
		"argv", req.Argv,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	e.Notifier.Success(fmt.Sprintf("%s completed", name))
	return res, nil
}

// startAndWait starts the child in its own process group and waits for exit.
// Context cancellation interrupts the group, then kills after the grace
// period.
func (e *Executor) startAndWait(ctx context.Context, cmd *exec.Cmd) error {
	if err := e.process.Start(cmd); err != nil {
		return err
	}
	return e.process.Wait(ctx, cmd, DefaultGracePeriod)
}

// forwardCaptured writes the captured streams to the sink after a sync-mode
// run completes.
func (e *Executor) forwardCaptured(res Result) {
	if res.Stdout != "" {
		_, _ = io.WriteString(e.Sink, res.Stdout)
	}
	if res.Stderr != "" {
		_, _ = io.WriteString(e.Sink, res.Stderr)
	}
}

// buildEnv merges the host environment with the request's overrides, forces
// the stream encoding, and applies the PATH prefix.
func buildEnv(req Request) []string {
	merged := map[string]string{}
	for _, kv := range os.Environ() {
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			merged[kv[:idx]] = kv[idx+1:]
		}
	}
	for k, v := range req.Env {
		merged[k] = v
	}

	if req.PathPrefix != "" {
		if existing, ok := merged["PATH"]; ok && existing != "" {
			merged["PATH"] = req.PathPrefix + string(os.PathListSeparator) + existing
		} else {
			merged["PATH"] = req.PathPrefix
		}
	}

	idx := strings.IndexByte(encodingVar, '=')
	merged[encodingVar[:idx]] = encodingVar[idx+1:]

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	return out
}

// exitCodeFromError extracts the exit code from an exec error.
func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
