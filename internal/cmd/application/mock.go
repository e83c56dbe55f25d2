package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier"
	"github.com/agentstation/dataunifier/pkg/sink"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Compile-time interface check.
var _ Application = (*Mock)(nil)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value; Unifier
// then builds a real Unifier for the data path.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := schema.NewCommand(mock)
type Mock struct {
	UnifierFunc      func(dataPath string, opts ...dataunifier.Option) (*dataunifier.Unifier, error)
	EngineFunc       func() (*unify.Engine, error)
	SinksFunc        func(ctx context.Context) ([]sink.Sink, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Unifier returns a unifier using the mock function or dataunifier.New.
func (m *Mock) Unifier(dataPath string, opts ...dataunifier.Option) (*dataunifier.Unifier, error) {
	if m.UnifierFunc != nil {
		return m.UnifierFunc(dataPath, opts...)
	}
	opts = append([]dataunifier.Option{
		dataunifier.WithDataPath(dataPath),
		dataunifier.WithLogger(m.Logger()),
	}, opts...)
	return dataunifier.New(opts...)
}

// Engine returns an engine using the mock function or the default engine.
func (m *Mock) Engine() (*unify.Engine, error) {
	if m.EngineFunc != nil {
		return m.EngineFunc()
	}
	return unify.NewEngine()
}

// Sinks returns sinks using the mock function or none.
func (m *Mock) Sinks(ctx context.Context) ([]sink.Sink, error) {
	if m.SinksFunc != nil {
		return m.SinksFunc(ctx)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the mock function result or false.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
