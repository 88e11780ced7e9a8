package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadDir string

var downloadCmd = &cobra.Command{
	Use:     "download <workflow-id | workflow.py>",
	Short:   "Download a workflow and convert it back to source form",
	GroupID: groupCore,
	Long: `Download a workflow's artifact from the remote service and convert it
to a Python source file.

The argument is a workflow identifier, or a local source file whose
workflow_id assignment names the workflow. Files land in the workspace
root unless --dir says otherwise; the intermediate JSON artifact is
removed after conversion.

Examples:
  flowbridge download 4f1c…d2
  flowbridge download report.py --dir ./restored`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.ops.WorkflowIDFromArg(args[0])
		if err != nil {
			return err
		}

		source, err := a.ops.Download(cmd.Context(), id, downloadDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "downloaded: %s\n", source)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "Target directory (default: workspace root)")
}
