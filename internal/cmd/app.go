package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/flowbridge/internal/config"
	"github.com/runger/flowbridge/internal/execute"
	"github.com/runger/flowbridge/internal/histstore"
	"github.com/runger/flowbridge/internal/logging"
	"github.com/runger/flowbridge/internal/meta"
	"github.com/runger/flowbridge/internal/ops"
)

// app bundles the collaborators a command invocation needs. Built fresh per
// invocation; nothing here is package-level state.
type app struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
	ops    *ops.Ops
	store  *histstore.Store

	logFile io.Closer
}

// newApp loads configuration, opens the operations log and history cache, and
// wires the executor. The workspace root is discovered by walking up from the
// working directory to the sync marker; commands that do not need a workspace
// work fine with none found.
func newApp(cmd *cobra.Command) (*app, error) {
	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("creating data directories: %w", err)
	}

	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, paths: paths}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = paths.LogFile()
	}
	logOut, logFile := openLog(logPath)
	a.logFile = logFile
	a.logger = logging.New(&logging.Config{
		Output: logOut,
		Level:  logging.ParseLevel(cfg.Log.Level),
	})

	// Tool output goes to stderr; stdout is reserved for results so that
	// render/history output can be piped.
	sink := execute.NewSink(cmd.ErrOrStderr())
	notifier := newConsoleNotifier(cmd.ErrOrStderr())
	executor := execute.New(sink, notifier, a.logger)

	if cfg.History.Enabled {
		store, err := histstore.Open(paths.DatabaseFile())
		if err != nil {
			a.logger.Warn("history cache unavailable", "path", paths.DatabaseFile(), "error", err)
		} else {
			a.store = store
			retention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
			if err := store.Prune(cmd.Context(), retention); err != nil {
				a.logger.Warn("history cache prune failed", "error", err)
			}
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	workspace := meta.FindRoot(wd)

	a.ops = ops.New(cfg, executor, a.logger, a.store, workspace)
	return a, nil
}

// Close releases the app's resources. Safe on a partially built app.
func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// openLog opens the operations log for appending. When the file cannot be
// opened, logging falls back to stderr rather than failing the command.
func openLog(path string) (io.Writer, io.Closer) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr, nil
	}
	return f, f
}
