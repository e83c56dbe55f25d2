package dataunifier

import (
	"strconv"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/report"
	"github.com/agentstation/dataunifier/pkg/sink"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Option is a function that configures a Unifier.
type Option func(*options) error

// options holds the configuration of a Unifier.
type options struct {
	dataPath     string
	outputPath   string
	delimiter    rune
	headerStyle  unify.HeaderStyle
	passthrough  []string
	sinks        []sink.Sink
	logger       *zerolog.Logger
	runID        string
	reportPath   string
	reportFormat report.Format
}

// defaults returns the default options.
func defaults() *options {
	return &options{
		outputPath:  constants.DefaultOutputFile,
		delimiter:   constants.DefaultDelimiter,
		headerStyle: unify.StyleCanonical,
	}
}

// apply applies the given options in order.
func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithDataPath sets the root directory to read CSV files from.
func WithDataPath(path string) Option {
	return func(o *options) error {
		o.dataPath = path
		return nil
	}
}

// WithOutputPath sets the unified CSV file to write.
func WithOutputPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewConfigError("output", "output path is empty", nil)
		}
		o.outputPath = path
		return nil
	}
}

// WithDelimiter sets the field delimiter of input and output files.
func WithDelimiter(r rune) Option {
	return func(o *options) error {
		if r == 0 || r == '"' || r == '\r' || r == '\n' || !utf8.ValidRune(r) || r == utf8.RuneError {
			return errors.NewConfigError("delimiter", "invalid delimiter "+strconv.QuoteRune(r), nil)
		}
		o.delimiter = r
		return nil
	}
}

// WithHeaderStyle selects how the header row is labeled.
func WithHeaderStyle(style unify.HeaderStyle) Option {
	return func(o *options) error {
		parsed, err := unify.ParseHeaderStyle(string(style))
		if err != nil {
			return err
		}
		o.headerStyle = parsed
		return nil
	}
}

// WithPassthrough declares unrecognized columns to keep in the output.
func WithPassthrough(columns ...string) Option {
	return func(o *options) error {
		o.passthrough = append(o.passthrough, columns...)
		return nil
	}
}

// WithSinks adds sinks that receive the result after the CSV file has been
// written.
func WithSinks(sinks ...sink.Sink) Option {
	return func(o *options) error {
		for _, s := range sinks {
			if s != nil {
				o.sinks = append(o.sinks, s)
			}
		}
		return nil
	}
}

// WithLogger sets the logger used by Run. Without it the logger from the
// run context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithRunID fixes the run identifier. By default every run gets a new one.
func WithRunID(id string) Option {
	return func(o *options) error {
		o.runID = id
		return nil
	}
}

// WithReportPath writes the run report to path. Unless WithReportFormat is
// given the format follows the file extension (.json, otherwise YAML).
func WithReportPath(path string) Option {
	return func(o *options) error {
		o.reportPath = path
		return nil
	}
}

// WithReportFormat sets the report file format.
func WithReportFormat(format string) Option {
	return func(o *options) error {
		if format == "" {
			return nil
		}
		parsed, err := report.ParseFormat(format)
		if err != nil {
			return err
		}
		o.reportFormat = parsed
		return nil
	}
}
