package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runger/flowbridge/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect and initialize the configuration",
	GroupID: groupSetup,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after file loading and environment overrides
(FLOWBRIDGE_PYTHON, FLOWBRIDGE_LOG_LEVEL, FLOWBRIDGE_DEBUG, WFTOOL_PROJECT).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := config.DefaultPaths()
		cfg, err := config.LoadFromFile(paths.ConfigFile())
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s# %s\n%s", colorDim, paths.ConfigFile(), colorReset)
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := config.DefaultPaths()
		path := paths.ConfigFile()

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		if err := config.DefaultConfig().SaveToFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
