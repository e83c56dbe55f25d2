// Package sink writes unified results to their destinations.
package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/agentstation/dataunifier/pkg/accumulator"
	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/logging"
)

// Sink receives the complete result of a run.
type Sink interface {
	// Name identifies the sink in logs and reports.
	Name() string
	// Write persists result. It is called once per run.
	Write(ctx context.Context, result *accumulator.Result) error
}

// CSVSink writes the header and all records to one CSV file, replacing any
// existing file.
type CSVSink struct {
	path      string
	delimiter rune
}

// CSVOption configures a CSVSink.
type CSVOption func(*CSVSink)

// WithDelimiter sets the output delimiter. The default is a comma.
func WithDelimiter(r rune) CSVOption {
	return func(s *CSVSink) {
		if r != 0 {
			s.delimiter = r
		}
	}
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string, opts ...CSVOption) *CSVSink {
	s := &CSVSink{path: path, delimiter: constants.DefaultDelimiter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Sink.
func (s *CSVSink) Name() string { return "csv" }

// Path returns the output file path.
func (s *CSVSink) Path() string { return s.path }

// Write implements Sink. The file is written to a temporary sibling and
// renamed into place so a failed write never leaves a truncated output.
func (s *CSVSink) Write(ctx context.Context, result *accumulator.Result) error {
	logger := logging.FromContext(ctx)
	logger.Info().Str("path", s.path).Int("rows", result.Len()).Msg("Start writing")

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", s.path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	w := csv.NewWriter(tmp)
	w.Comma = s.delimiter
	if err := w.WriteAll(result.Rows()); err != nil {
		cleanup()
		return errors.WrapIO("write", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", s.path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", s.path, err)
	}

	logger.Info().Str("path", s.path).Msg("Writing was finished")
	return nil
}
