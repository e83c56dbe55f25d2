// Package dataunifier merges a directory tree of CSV files with
// heterogeneous column schemas into one CSV file with a canonical schema.
//
// A Unifier discovers the input files, loads every file into typed rows,
// maps each row onto the canonical header through the field unification
// engine and writes the accumulated result through its sinks. Per-cell and
// per-row failures never abort a run; they are logged and counted in the
// run report.
//
// Example usage:
//
//	u, err := dataunifier.New(
//	    dataunifier.WithDataPath("./data"),
//	    dataunifier.WithOutputPath("unified_file.csv"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, err := u.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d rows from %d files\n", rep.Rows, rep.Files)
package dataunifier

import (
	"context"
	"fmt"

	"github.com/agentstation/dataunifier/pkg/accumulator"
	"github.com/agentstation/dataunifier/pkg/discovery"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/loader"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/report"
	"github.com/agentstation/dataunifier/pkg/sink"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Compile-time interface check.
var _ Hooks = (*Unifier)(nil)

// Unifier runs the unification pipeline for one data directory.
type Unifier struct {
	options *options
	engine  *unify.Engine
	loader  *loader.Loader
	csv     *sink.CSVSink
	sinks   []sink.Sink
	*hooks
}

// FileResult is the outcome of unifying one input file.
type FileResult struct {
	Stats accumulator.FileStats
	// Rows holds one result per data row, in file order.
	Rows []*unify.Result
}

// New creates a Unifier. The data path must be an existing directory.
func New(opts ...Option) (*Unifier, error) {
	o := defaults()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	if err := discovery.ValidateRoot(o.dataPath); err != nil {
		return nil, err
	}

	engine, err := unify.NewEngine(
		unify.WithHeaderStyle(o.headerStyle),
		unify.WithPassthrough(o.passthrough...),
	)
	if err != nil {
		return nil, err
	}

	csvSink := sink.NewCSVSink(o.outputPath, sink.WithDelimiter(o.delimiter))
	return &Unifier{
		options: o,
		engine:  engine,
		loader:  loader.New(loader.WithDelimiter(o.delimiter)),
		csv:     csvSink,
		sinks:   append([]sink.Sink{csvSink}, o.sinks...),
		hooks:   newHooks(),
	}, nil
}

// Engine returns the field unification engine.
func (u *Unifier) Engine() *unify.Engine {
	return u.engine
}

// DataPath returns the root directory.
func (u *Unifier) DataPath() string {
	return u.options.dataPath
}

// OutputPath returns the unified CSV file path.
func (u *Unifier) OutputPath() string {
	return u.csv.Path()
}

// Run discovers, loads and unifies every input file, then writes the result
// through every sink. The CSV sink always writes first. A canceled context
// stops the run between files and nothing is written.
func (u *Unifier) Run(ctx context.Context) (*report.Report, error) {
	if u.options.logger != nil {
		ctx = logging.WithLogger(ctx, u.options.logger)
	}
	rep := report.New(u.options.runID, u.options.dataPath, u.csv.Path())
	ctx = logging.WithRunID(ctx, rep.RunID)
	logger := logging.FromContext(ctx)

	result, err := u.Unify(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(u.sinks))
	for _, s := range u.sinks {
		if err := ctx.Err(); err != nil {
			return nil, canceled(err)
		}
		if err := s.Write(ctx, result); err != nil {
			return nil, err
		}
		names = append(names, s.Name())
	}

	rep.Finish(result, names)
	rep.Log(logger)

	if u.options.reportPath != "" {
		format := u.options.reportFormat
		if format == "" {
			format = report.FormatForPath(u.options.reportPath)
		}
		if err := rep.WriteFile(u.options.reportPath, format); err != nil {
			return rep, err
		}
		logger.Debug().Str("path", u.options.reportPath).Msg("Report written")
	}
	return rep, nil
}

// Unify reads every discovered file and accumulates the unified records
// without writing them.
func (u *Unifier) Unify(ctx context.Context) (*accumulator.Result, error) {
	logger := logging.FromContext(ctx)
	logger.Info().Str("path", u.options.dataPath).Msg("Start reading")

	paths, err := discovery.Discover(ctx, u.options.dataPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, canceled(ctxErr)
		}
		return nil, err
	}

	result := accumulator.New(u.engine.Header(), u.engine.Labels())
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, canceled(err)
		}

		fr, err := u.UnifyFile(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, canceled(ctxErr)
			}
			logger.Error().Err(err).Str("file", path).Msg("Skipping unreadable file")
			stats := accumulator.FileStats{Path: path, Error: err.Error()}
			result.AddFile(stats)
			u.fileProcessed(stats)
			continue
		}

		for i, res := range fr.Rows {
			rec := accumulator.Record{
				SourceFile: path,
				Row:        i + 1,
				Values:     res.Row.Values(result.Header()),
			}
			result.Add(rec)
			u.recordUnified(rec, res)
		}
		result.AddFile(fr.Stats)
		u.fileProcessed(fr.Stats)
	}

	logger.Info().Int("files", len(paths)).Int("rows", result.Len()).Msg("Reading was finished")
	return result, nil
}

// UnifyFile loads one file and unifies each of its rows.
func (u *Unifier) UnifyFile(ctx context.Context, path string) (*FileResult, error) {
	file, err := u.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	fileCtx := logging.WithFile(ctx, path)
	fr := &FileResult{
		Stats: accumulator.FileStats{
			Path:               path,
			Rows:               len(file.Rows),
			ConversionFailures: file.Failures,
		},
		Rows: make([]*unify.Result, 0, len(file.Rows)),
	}
	for i, row := range file.Rows {
		res := u.engine.Unify(logging.WithRow(fileCtx, i+1), row)
		fr.Stats.HandlerFallbacks += res.Fallbacks
		fr.Stats.Warnings += res.Warnings
		fr.Rows = append(fr.Rows, res)
	}
	return fr, nil
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
}
