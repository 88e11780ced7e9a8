package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Short:   "Manage remote workflow groups",
	GroupID: groupCore,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group under the workspace's base group",
	Long: `Create a remote group and the matching local workspace directory.

The name is combined with the workspace's base group from the sync
marker; a name that repeats trailing segments of the base is merged
rather than duplicated. Names containing "." or ".." segments are
rejected.

Examples:
  flowbridge group create reports
  flowbridge group create reports/monthly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		fullName, localDir, err := a.ops.CreateGroup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created group %s\n", fullName)
		fmt.Fprintf(cmd.OutOrStdout(), "local directory %s\n", localDir)
		return nil
	},
}

func init() {
	groupCmd.AddCommand(groupCreateCmd)
}
