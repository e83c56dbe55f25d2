package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dataunifier/cmd/dataunifier/cmd/inspect"
	"github.com/agentstation/dataunifier/cmd/dataunifier/cmd/run"
	"github.com/agentstation/dataunifier/cmd/dataunifier/cmd/schema"
	"github.com/agentstation/dataunifier/cmd/dataunifier/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		run.NewCommand(a),
		schema.NewCommand(a),
		inspect.NewCommand(a),
		version.NewCommand(a),
	)
}
