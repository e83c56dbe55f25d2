package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/dataunifier/cmd/dataunifier/cmd/run"
	"github.com/agentstation/dataunifier/internal/cmd/output"
)

// Execute runs the dataunifier CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// Invoked with a data path the root command runs the unification.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dataunifier <data_path>",
		Short:   "Unify CSV files with different schemas into one CSV file",
		Version: a.version,
		Long: `dataunifier reads every CSV file found in the leaf directories of
<data_path>, maps their columns onto one canonical schema and writes the
result to a single CSV file.

Columns are recognized by name (timestamp, date, date_readable, type,
transaction, amount, amounts, euro, cents, from, to). Values that cannot be
converted are kept as they are and reported in the logs.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Run(cmd, a, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.dataunifier.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml, wide")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&a.config.LogFormat, "log-format", a.config.LogFormat, "log format: auto, json, console")

	// Run configuration
	flags.StringVarP(&a.config.OutputFile, "output-file", "O", a.config.OutputFile, "unified CSV file to write")
	flags.StringVar(&a.config.Delimiter, "delimiter", a.config.Delimiter, "field delimiter of input and output files")
	flags.StringVar(&a.config.HeaderStyle, "header-style", a.config.HeaderStyle, "header labels: canonical or display")
	flags.StringSliceVar(&a.config.Passthrough, "passthrough", a.config.Passthrough, "unrecognized columns to keep, in order")
	flags.StringVar(&a.config.ReportPath, "report", a.config.ReportPath, "write the run report to this file")
	flags.StringVar(&a.config.ReportFormat, "report-format", a.config.ReportFormat, "report file format: yaml or json (default from extension)")
	flags.StringVar(&a.config.MongoURI, "mongo-uri", a.config.MongoURI, "also upsert records into MongoDB at this URI")
	flags.StringVar(&a.config.MongoDatabase, "mongo-database", a.config.MongoDatabase, "MongoDB database")
	flags.StringVar(&a.config.MongoCollection, "mongo-collection", a.config.MongoCollection, "MongoDB collection")

	rootCmd.SetVersionTemplate("dataunifier {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Flags are bound to the config fields, so merging first lets the
	// reads below see the file values.
	if cmd.Flags().Changed("config") {
		file, err := loadConfig(viper.New(), a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config.mergeFile(file, cmd.Flags().Changed)
	}

	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	var logLevel string
	if cmd.Flags().Changed("log-level") {
		logLevel = mustGetString(cmd, "log-level")
	}

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	if !a.customLogger {
		logger := NewLogger(a.config)
		a.logger = &logger
	}

	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
