package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiln-build/reportexec/internal/builtin"
	"github.com/kiln-build/reportexec/internal/lifecycle"
	"github.com/kiln-build/reportexec/internal/plugin"
	"github.com/kiln-build/reportexec/internal/report"
)

var planRequestFile string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Resolve a request file into the prepared report executions",
	Long: `plan resolves every report plugin in the request file, selects and
configures its goals, and prints the resulting execution plan in the
order the rendering stage would invoke it.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planRequestFile, "file", "f", "", "request file (yaml)")
	planCmd.MarkFlagRequired("file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	req, err := loadRequestFile(planRequestFile)
	if err != nil {
		return err
	}

	manager := newManager()
	engine := lifecycle.NewEngine(manager, appLogger)
	executor := report.NewExecutor(manager, engine, newVersionResolver(), appLogger)

	executions, err := executor.BuildReportExecutions(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Report execution plan"))

	if len(executions) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("  (no report executions)"))
		return nil
	}

	lastPlugin := ""
	for _, exec := range executions {
		if id := exec.Plugin.ID(); id != lastPlugin {
			fmt.Fprintln(out, pluginStyle.Render("  "+id))
			lastPlugin = id
		}
		fmt.Fprintf(out, "    %s %s\n",
			goalStyle.Render(exec.ExecutionID),
			mutedStyle.Render(fmt.Sprintf("(%s, output %s)", exec.Report.CategoryName(), exec.Report.OutputName())))
	}

	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("  %d execution(s)", len(executions))))
	return nil
}

// newManager builds the manifest-backed plugin manager over the
// configured repository, with the builtin implementations registered.
func newManager() plugin.Manager {
	catalog := plugin.NewCatalog()
	builtin.Register(catalog)
	return plugin.NewManifestManager(appConfig.Plugins.RepositoryDir, catalog, appLogger)
}

func newVersionResolver() plugin.VersionResolver {
	return plugin.NewRepositoryVersionResolver(appConfig.Plugins.RepositoryDir, appLogger)
}
