package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/flowbridge/internal/render"
)

var renderRaw bool

var renderCmd = &cobra.Command{
	Use:     "render <workflow.py>",
	Short:   "Print a workflow's graph representation as JSON",
	GroupID: groupCore,
	Long: `Render a workflow file into its graph representation.

The workflow tool prints the graph as JSON somewhere in its output;
flowbridge extracts the payload and pretty-prints it. Use --raw to get
the payload exactly as the tool produced it, e.g. for piping into jq.

Examples:
  flowbridge render report.py
  flowbridge render report.py --raw | jq '.nodes'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		graph, err := a.ops.Render(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if renderRaw {
			fmt.Fprintln(cmd.OutOrStdout(), string(graph))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.PrettyJSON(graph))
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderRaw, "raw", false, "Print the payload without re-indenting")
}
