// Package app provides the application context and dependency management
// for the dataunifier CLI. It centralizes configuration, logging and the
// lifecycle of external connections.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier"
	"github.com/agentstation/dataunifier/internal/cmd/application"
	"github.com/agentstation/dataunifier/internal/cmd/output"
	"github.com/agentstation/dataunifier/internal/storage"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/sink"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the dataunifier application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger, rebuilt from flags unless set with WithLogger
	logger       *zerolog.Logger
	customLogger bool

	// MongoDB provider, connected on first use of Sinks
	mu    sync.Mutex
	mongo *storage.MongoProvider
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the output format, detected from the terminal when
// none is configured.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// NoColor reports whether --no-color, the config file or NO_COLOR disabled
// colors.
func (a *App) NoColor() bool {
	return a.config.NoColor || os.Getenv("NO_COLOR") != ""
}

// Unifier creates a Unifier for dataPath from the configuration.
func (a *App) Unifier(dataPath string, opts ...dataunifier.Option) (*dataunifier.Unifier, error) {
	base, err := a.unifierOptions()
	if err != nil {
		return nil, err
	}
	base = append(base, dataunifier.WithDataPath(dataPath))
	return dataunifier.New(append(base, opts...)...)
}

// Engine returns a unification engine configured like the Unifier.
func (a *App) Engine() (*unify.Engine, error) {
	return unify.NewEngine(
		unify.WithHeaderStyle(unify.HeaderStyle(a.config.HeaderStyle)),
		unify.WithPassthrough(a.config.Passthrough...),
	)
}

// Sinks returns the MongoDB sink when a URI is configured.
func (a *App) Sinks(ctx context.Context) ([]sink.Sink, error) {
	if a.config.MongoURI == "" {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mongo == nil {
		client, err := storage.Connect(ctx, a.config.MongoURI)
		if err != nil {
			return nil, err
		}
		a.mongo = storage.NewMongoProvider(client, a.config.MongoDatabase)
	}

	return []sink.Sink{
		storage.NewMongoSink(a.mongo, storage.WithCollection(a.config.MongoCollection)),
	}, nil
}

// Shutdown releases external connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mongo == nil {
		return nil
	}
	err := a.mongo.Disconnect(ctx)
	a.mongo = nil
	return err
}

// unifierOptions translates the configuration into Unifier options.
func (a *App) unifierOptions() ([]dataunifier.Option, error) {
	delimiter, err := a.config.DelimiterRune()
	if err != nil {
		return nil, err
	}

	opts := []dataunifier.Option{
		dataunifier.WithLogger(a.logger),
		dataunifier.WithDelimiter(delimiter),
		dataunifier.WithHeaderStyle(unify.HeaderStyle(a.config.HeaderStyle)),
		dataunifier.WithPassthrough(a.config.Passthrough...),
	}
	if a.config.OutputFile != "" {
		opts = append(opts, dataunifier.WithOutputPath(a.config.OutputFile))
	}
	if a.config.ReportPath != "" {
		opts = append(opts,
			dataunifier.WithReportPath(a.config.ReportPath),
			dataunifier.WithReportFormat(a.config.ReportFormat))
	}
	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.customLogger = true
		return nil
	}
}
