// Package run provides the command that unifies a data directory.
package run

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/dataunifier"
	"github.com/agentstation/dataunifier/internal/cmd/alerts"
	"github.com/agentstation/dataunifier/internal/cmd/application"
	"github.com/agentstation/dataunifier/internal/cmd/output"
	"github.com/agentstation/dataunifier/pkg/discovery"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/report"
)

// NewCommand creates the run command. The root command runs the same code
// when given a data path.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "run <data_path>",
		GroupID: "core",
		Short:   "Unify every CSV file below data_path",
		Long: `Run reads every file in the leaf directories of data_path, maps the
columns onto the canonical schema and writes the unified CSV file. The run
report is printed when the run finishes.`,
		Example: `  dataunifier run ./data
  dataunifier run ./data -O out/unified.csv --header-style display
  dataunifier run ./data --passthrough memo,account --report run.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, app, args[0])
		},
	}
}

// Run unifies dataPath and prints the run report.
func Run(cmd *cobra.Command, app application.Application, dataPath string) error {
	// Fail on a missing directory before connecting to any sink.
	if err := discovery.ValidateRoot(dataPath); err != nil {
		return err
	}

	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	sinks, err := app.Sinks(ctx)
	if err != nil {
		return err
	}

	u, err := app.Unifier(dataPath, dataunifier.WithSinks(sinks...))
	if err != nil {
		return err
	}

	rep, err := u.Run(ctx)
	if err != nil {
		return err
	}

	format := output.Format(app.OutputFormat())
	w := cmd.OutOrStdout()
	if err := output.Print(w, format, nil, rep); err != nil {
		return err
	}
	if format == output.FormatWide && len(rep.PerFile) > 0 {
		if err := output.Print(w, format, nil, rep.PerFile); err != nil {
			return err
		}
	}

	stderr := cmd.ErrOrStderr()
	return alerts.NewPrinter(stderr, format, alerts.UseColor(stderr, app.NoColor())).Print(Alerts(rep))
}

// Alerts summarizes a run report for the terminal: one notice for skipped
// files, one for values kept unconverted, and a success line otherwise.
func Alerts(rep *report.Report) []*alerts.Alert {
	var out []*alerts.Alert

	if rep.SkippedFiles > 0 {
		alert := alerts.Errorf("%d file(s) could not be read", rep.SkippedFiles)
		for _, fs := range rep.PerFile {
			if fs.Error != "" {
				alert.WithDetails(fmt.Sprintf("%s: %s", fs.Path, fs.Error))
			}
		}
		out = append(out, alert)
	}
	if rep.HandlerFallbacks > 0 {
		out = append(out, alerts.Warningf(
			"%d value(s) kept unconverted, see the log for details", rep.HandlerFallbacks))
	}
	if len(out) == 0 {
		out = append(out, alerts.Successf(
			"Unified %d row(s) from %d file(s) into %s", rep.Rows, rep.Files, rep.OutputPath))
	}
	return out
}
