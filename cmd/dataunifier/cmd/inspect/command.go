// Package inspect provides the command that explains how the rows of one
// file were unified.
package inspect

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dataunifier/internal/cmd/application"
	"github.com/agentstation/dataunifier/internal/cmd/output"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Target explains the value of one canonical column of one row.
type Target struct {
	Row         int      `json:"row" yaml:"row"`
	Target      string   `json:"target" yaml:"target"`
	Value       string   `json:"value" yaml:"value"`
	Source      string   `json:"source" yaml:"source"`
	Handler     string   `json:"handler" yaml:"handler"`
	Fallback    bool     `json:"fallback" yaml:"fallback"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
	Warning     string   `json:"warning,omitempty" yaml:"warning,omitempty"`
	Overwritten []string `json:"overwritten,omitempty" yaml:"overwritten,omitempty"`
}

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	var row int

	cmd := &cobra.Command{
		Use:     "inspect <file>",
		GroupID: "core",
		Short:   "Show which source column produced every value of a file",
		Long: `Inspect unifies a single CSV file without writing any output and lists,
for every row and canonical column, the winning source column, the handler
that produced the value, whether the raw value was kept after a failure and
the contributions that were overwritten.`,
		Example: `  dataunifier inspect data/bank/january.csv
  dataunifier inspect data/bank/january.csv --row 3 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			u, err := app.Unifier(filepath.Dir(path))
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			fr, err := u.UnifyFile(ctx, path)
			if err != nil {
				return err
			}

			if row < 0 || row > len(fr.Rows) {
				return errors.NewValidationError("row", row,
					fmt.Sprintf("must be between 1 and %d", len(fr.Rows)))
			}

			var targets []Target
			for i, res := range fr.Rows {
				if row != 0 && i+1 != row {
					continue
				}
				targets = append(targets, Explain(i+1, res, u.Engine().Header())...)
			}

			format := output.Format(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, Table(targets, format == output.FormatWide), targets)
		},
	}

	cmd.Flags().IntVar(&row, "row", 0, "only show this 1-based data row")
	return cmd
}

// Explain lists the provenance of every target of res that received a
// contribution, in header order.
func Explain(row int, res *unify.Result, header []string) []Target {
	var out []Target
	for _, name := range header {
		fp, ok := res.Provenance[name]
		if !ok {
			continue
		}
		t := Target{
			Row:      row,
			Target:   name,
			Value:    fp.Current.Value.String(),
			Source:   fp.Current.Source,
			Handler:  string(fp.Current.Handler),
			Fallback: fp.Current.Fallback,
		}
		if fp.Current.Err != nil {
			t.Error = fp.Current.Err.Error()
		}
		if fp.Current.Warning != nil {
			t.Warning = fp.Current.Warning.Error()
		}
		for _, c := range fp.History {
			t.Overwritten = append(t.Overwritten, c.Source+"="+c.Value.String())
		}
		out = append(out, t)
	}
	return out
}

// Table renders targets. The wide table adds errors and warnings.
func Table(targets []Target, wide bool) *output.Data {
	headers := []string{"Row", "Target", "Value", "Source", "Handler", "Fallback", "Overwritten"}
	if wide {
		headers = append(headers, "Error", "Warning")
	}

	align := make([]output.Align, len(headers))
	align[0] = output.AlignRight

	data := &output.Data{Headers: headers, ColumnAlignment: align}
	for _, t := range targets {
		row := []string{
			strconv.Itoa(t.Row),
			t.Target,
			t.Value,
			t.Source,
			t.Handler,
			strconv.FormatBool(t.Fallback),
			strings.Join(t.Overwritten, ", "),
		}
		if wide {
			row = append(row, t.Error, t.Warning)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}
