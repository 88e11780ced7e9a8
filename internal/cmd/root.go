// Package cmd implements the flowbridge command-line interface.
package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/runger/flowbridge/internal/execute"
	"github.com/runger/flowbridge/internal/ops"
)

// Command groups shown in help output.
const (
	groupCore  = "core"
	groupSetup = "setup"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitPrecondition = 2
	ExitCancelled    = 4
)

var rootCmd = &cobra.Command{
	Use:   "flowbridge",
	Short: "Command-line bridge to the wftool workflow service",
	Long: `flowbridge drives Python-defined workflows through the wftool CLI:
build and deploy workflow files, inspect execution history, request runs,
and keep workspace folders in sync with their remote groups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under ctx. Cancelling ctx interrupts a
// running subprocess group; the executor escalates to kill after the grace
// period.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps a command error to the process exit code. Failed
// preconditions and user cancellation get distinct codes; a subprocess
// failure propagates the child's own exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pre *ops.PreconditionError
	if errors.As(err, &pre) {
		return ExitPrecondition
	}
	if errors.Is(err, errCancelled) {
		return ExitCancelled
	}
	var exit *execute.ExitError
	if errors.As(err, &exit) && exit.Result.ExitCode > 0 {
		return exit.Result.ExitCode
	}
	return ExitFailure
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Workflow Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}
