package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/flowbridge/internal/config"
	"github.com/runger/flowbridge/internal/meta"
	"github.com/runger/flowbridge/internal/python"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Check the flowbridge installation and its dependencies",
	GroupID: groupSetup,
	Long: `Run diagnostic checks on the flowbridge installation.

This command checks:
- Python interpreter resolution
- Workspace virtual environment
- Workspace sync marker
- Configuration validity
- Data directories

Examples:
  flowbridge doctor`,
	RunE: runDoctor,
}

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%sflowbridge Doctor%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	workspace := meta.FindRoot(wd)

	paths := config.DefaultPaths()
	cfg, cfgErr := config.LoadFromFile(paths.ConfigFile())
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}

	results := []checkResult{
		checkConfigFile(paths, cfgErr),
		checkInterpreter(cfg, workspace),
		checkVenv(workspace),
		checkMarker(workspace),
		checkDataDirs(paths),
	}

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		var statusIcon string
		switch r.status {
		case "ok":
			statusIcon = colorGreen + "[OK]" + colorReset
		case "warn":
			statusIcon = colorYellow + "[WARN]" + colorReset
		case "error":
			statusIcon = colorRed + "[ERROR]" + colorReset
		}
		if r.status == "warn" {
			hasWarnings = true
		}
		if r.status == "error" {
			hasErrors = true
		}

		fmt.Fprintf(out, "  %s %s\n", statusIcon, r.name)
		if r.message != "" {
			fmt.Fprintf(out, "       %s%s%s\n", colorDim, r.message, colorReset)
		}
	}

	fmt.Fprintln(out)

	if hasErrors {
		fmt.Fprintf(out, "%sSome checks failed. Please fix the errors above.%s\n", colorRed, colorReset)
		return fmt.Errorf("doctor found errors")
	}
	if hasWarnings {
		fmt.Fprintf(out, "%sAll critical checks passed, but there are warnings.%s\n", colorYellow, colorReset)
	} else {
		fmt.Fprintf(out, "%sAll checks passed!%s\n", colorGreen, colorReset)
	}
	return nil
}

func checkConfigFile(paths *config.Paths, loadErr error) checkResult {
	if loadErr != nil {
		return checkResult{
			name:    "configuration",
			status:  "error",
			message: loadErr.Error(),
		}
	}
	if _, err := os.Stat(paths.ConfigFile()); os.IsNotExist(err) {
		return checkResult{
			name:    "configuration",
			status:  "ok",
			message: "no config file, using defaults (run 'flowbridge config init' to create one)",
		}
	}
	return checkResult{
		name:    "configuration",
		status:  "ok",
		message: paths.ConfigFile(),
	}
}

func checkInterpreter(cfg *config.Config, workspace string) checkResult {
	interp, err := python.Resolve(cfg.Python.Interpreter, workspace)
	if err != nil {
		return checkResult{
			name:    "python interpreter",
			status:  "error",
			message: err.Error(),
		}
	}

	// A venv interpreter resolves through the PATH prefix, not the host PATH.
	if interp.VenvBin != "" {
		return checkResult{
			name:    "python interpreter",
			status:  "ok",
			message: fmt.Sprintf("%s (from %s)", strings.Join(interp.Argv, " "), interp.VenvBin),
		}
	}

	path, err := exec.LookPath(interp.Argv[0])
	if err != nil {
		return checkResult{
			name:    "python interpreter",
			status:  "error",
			message: fmt.Sprintf("%s not found in PATH", interp.Argv[0]),
		}
	}
	return checkResult{
		name:    "python interpreter",
		status:  "ok",
		message: path,
	}
}

func checkVenv(workspace string) checkResult {
	if workspace == "" {
		return checkResult{
			name:    "virtual environment",
			status:  "warn",
			message: "no workspace open",
		}
	}
	bin, ok := python.VenvBinDir(workspace)
	if !ok {
		return checkResult{
			name:    "virtual environment",
			status:  "warn",
			message: "no .venv under the workspace root; the default interpreter will be used",
		}
	}
	return checkResult{
		name:    "virtual environment",
		status:  "ok",
		message: bin,
	}
}

func checkMarker(workspace string) checkResult {
	if workspace == "" {
		return checkResult{
			name:    "workspace sync marker",
			status:  "warn",
			message: "not inside a synced workspace; refresh and group commands will not work here",
		}
	}
	info, err := meta.Load(workspace)
	if err != nil {
		return checkResult{
			name:    "workspace sync marker",
			status:  "error",
			message: err.Error(),
		}
	}
	return checkResult{
		name:    "workspace sync marker",
		status:  "ok",
		message: fmt.Sprintf("group %s (project %s)", info.GroupName, info.ProjectName),
	}
}

func checkDataDirs(paths *config.Paths) checkResult {
	if err := paths.EnsureDirectories(); err != nil {
		return checkResult{
			name:    "data directories",
			status:  "error",
			message: err.Error(),
		}
	}
	return checkResult{
		name:    "data directories",
		status:  "ok",
		message: paths.DataDir,
	}
}
