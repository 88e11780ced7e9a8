package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/flowbridge/internal/render"
)

var (
	historyOffline bool
	historyWidth   int
)

var historyCmd = &cobra.Command{
	Use:     "history <workflow-id | workflow.py>",
	Short:   "Show a workflow's execution history",
	GroupID: groupCore,
	Long: `Fetch and display the execution history of a workflow.

The fetched history is cached in the local SQLite database; --offline
re-displays the cached result without invoking the workflow tool.

Examples:
  flowbridge history report.py
  flowbridge history 4f1c…d2 --offline`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		fetch := a.ops.History
		if historyOffline {
			fetch = a.ops.CachedHistory
		}

		runs, id, err := fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%sworkflow %s%s\n", colorBold, id, colorReset)
		fmt.Fprint(cmd.OutOrStdout(), render.HistoryTable(runs, historyWidth))
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyOffline, "offline", false, "Show the cached history without fetching")
	historyCmd.Flags().IntVar(&historyWidth, "width", 40, "Run-id column width (0 = no truncation)")
}
