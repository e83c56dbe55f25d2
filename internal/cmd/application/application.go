// Package application provides the application interface for dataunifier
// commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with a Mock:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            u, err := app.Unifier(args[0])
//	            if err != nil {
//	                return err
//	            }
//	            _, err = u.Run(cmd.Context())
//	            return err
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier"
	"github.com/agentstation/dataunifier/pkg/sink"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Application provides what commands need from the application.
type Application interface {
	// Unifier creates a Unifier for dataPath configured from flags, config
	// file and environment. opts are applied last.
	Unifier(dataPath string, opts ...dataunifier.Option) (*dataunifier.Unifier, error)

	// Engine returns the field unification engine configured with the
	// header style and pass-through columns.
	Engine() (*unify.Engine, error)

	// Sinks returns the configured sinks in addition to the CSV file, such
	// as MongoDB. They are released by Shutdown.
	Sinks(ctx context.Context) ([]sink.Sink, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// NoColor reports whether colored terminal output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
