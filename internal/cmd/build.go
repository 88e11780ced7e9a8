package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:     "build <workflow.py>",
	Short:   "Compile a workflow file into its JSON artifact",
	GroupID: groupCore,
	Long: `Compile a workflow source file with the workflow tool.

The tool runs in the file's directory and writes the build artifact
(<name>.json) next to the source when the build succeeds.

Examples:
  flowbridge build report.py
  flowbridge build workflows/nightly.py`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		artifact, err := a.ops.Build(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if artifact != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "artifact: %s\n", artifact)
		}
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:     "push <workflow.py>",
	Short:   "Deploy a workflow to the remote execution service",
	GroupID: groupCore,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.ops.Push(cmd.Context(), args[0])
	},
}

var deployCmd = &cobra.Command{
	Use:     "deploy <workflow.py>",
	Short:   "Build a workflow and deploy it in one step",
	GroupID: groupCore,
	Long: `Build a workflow file and, when the build succeeds, deploy it.

Deployment is never attempted after a failed build. A failed deployment
leaves the build artifact in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.ops.BuildPush(cmd.Context(), args[0])
	},
}
