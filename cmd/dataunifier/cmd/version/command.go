// Package version provides the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/dataunifier/internal/cmd/application"
	"github.com/agentstation/dataunifier/internal/cmd/output"
)

// Info is the build information of the binary.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version: app.Version(),
				Commit:  app.Commit(),
				Date:    app.Date(),
				BuiltBy: app.BuiltBy(),
			}

			switch format := output.Format(app.OutputFormat()); format {
			case output.FormatJSON, output.FormatYAML:
				return output.Print(cmd.OutOrStdout(), format, nil, info)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dataunifier %s\n", info.Version)
			fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
			fmt.Fprintf(w, "  built:    %s\n", info.Date)
			fmt.Fprintf(w, "  built by: %s\n", info.BuiltBy)
			return nil
		},
	}
}
