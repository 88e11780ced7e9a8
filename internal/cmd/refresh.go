package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:     "refresh [folder]",
	Short:   "Re-sync a workspace folder from its remote group",
	GroupID: groupCore,
	Long: `Replace a workspace folder's contents with the current state of its
remote group.

Without an argument the whole workspace is refreshed. A subfolder maps
to the remote group extended by the folder's path relative to the
workspace root. Local contents are cleared before syncing; the sync
metadata marker always survives.

Examples:
  flowbridge refresh
  flowbridge refresh ./reports`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		dir := ""
		if len(args) > 0 {
			dir, err = filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving %s: %w", args[0], err)
			}
		}

		if err := a.ops.RefreshFolder(cmd.Context(), dir); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "folder refreshed")
		return nil
	},
}
