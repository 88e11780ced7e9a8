package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runger/flowbridge/internal/form"
)

// errCancelled is returned when the user dismisses the parameter form.
var errCancelled = errors.New("run request cancelled")

var (
	runProject string
	runParams  []string
	runNoInput bool
)

var runCmd = &cobra.Command{
	Use:     "run <workflow-id | workflow.py>",
	Short:   "Request execution of a deployed workflow",
	GroupID: groupCore,
	Long: `Request execution of a workflow on the remote service.

The workflow's parameters are fetched first and presented in an
interactive form, pre-filled with their defaults. Passing --param or
--no-input skips the form; parameters not overridden keep their
defaults. A parameter-fetch failure is not fatal: the run proceeds with
defaults.

Examples:
  flowbridge run report.py
  flowbridge run report.py --param env=prod --param region=eu
  flowbridge run 4f1c…d2 --project analytics --no-input`,
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

		project := runProject
		if project == "" {
			project = a.cfg.Workspace.DefaultProject
		}

		params := a.ops.FetchRunParameters(cmd.Context(), id)
		values := make(map[string]string, len(params))
		for _, p := range params {
			values[p.Name] = p.Default
		}

		overrides, err := parseParamFlags(runParams)
		if err != nil {
			return err
		}
		for k, v := range overrides {
			values[k] = v
		}

		interactive := !runNoInput && len(overrides) == 0 && len(params) > 0
		if interactive {
			entered, err := promptParams(cmd, id, params)
			if err != nil {
				return err
			}
			values = entered
		}

		if err := a.ops.SubmitRun(cmd.Context(), id, project, values); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "execution requested for %s\n", id)
		return nil
	},
}

// promptParams runs the interactive parameter form.
func promptParams(cmd *cobra.Command, id string, params []form.Param) (map[string]string, error) {
	model := form.New(fmt.Sprintf("Run workflow %s", id), params)
	prog := tea.NewProgram(model,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("parameter form failed: %w", err)
	}
	m, ok := final.(form.Model)
	if !ok || m.Cancelled() {
		return nil, errCancelled
	}
	return m.Values(), nil
}

// parseParamFlags parses repeated --param name=value flags.
func parseParamFlags(flags []string) (map[string]string, error) {
	out := make(map[string]string, len(flags))
	for _, f := range flags {
		name, value, found := strings.Cut(f, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --param %q (expected name=value)", f)
		}
		out[name] = value
	}
	return out, nil
}

func init() {
	runCmd.Flags().StringVar(&runProject, "project", "", "Project to run under (default: configured project)")
	runCmd.Flags().StringArrayVar(&runParams, "param", nil, "Parameter override as name=value (repeatable)")
	runCmd.Flags().BoolVar(&runNoInput, "no-input", false, "Skip the interactive form and use defaults")
}
