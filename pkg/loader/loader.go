// Package loader reads a single CSV file into typed rows. Each cell is
// converted according to the declared kind of its header; cells that fail
// conversion are kept as raw values and reported, never dropped.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/dates"
	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/fields"
	"github.com/agentstation/dataunifier/pkg/logging"
	"github.com/agentstation/dataunifier/pkg/money"
	"github.com/agentstation/dataunifier/pkg/typed"
)

const bom = "\ufeff"

// File is the typed content of one CSV file.
type File struct {
	Path   string
	Header []string
	// Rows are the data records in file order. Row i is data row i+1.
	Rows []*typed.Row
	// Failures counts cells whose declared conversion failed.
	Failures int
}

// Loader reads CSV files.
type Loader struct {
	delimiter rune
}

// Option configures a Loader.
type Option func(*Loader)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) Option {
	return func(l *Loader) {
		if r != 0 {
			l.delimiter = r
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{delimiter: constants.DefaultDelimiter}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path with a default Loader.
func Load(ctx context.Context, path string, opts ...Option) (*File, error) {
	return New(opts...).Load(ctx, path)
}

// Load reads and converts the file at path. Only I/O and CSV syntax errors
// are returned; conversion failures are logged and counted on the File.
func (l *Loader) Load(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx = logging.WithFile(ctx, path)
	logger := logging.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1

	out := &File{Path: path, Header: []string{}}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			logger.Warn().Msg("Empty file, no header")
			return out, nil
		}
		return nil, wrapCSV(path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	out.Header = header

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, wrapCSV(path, err)
		}

		row := typed.NewRow()
		for i, name := range header {
			if i >= len(record) {
				break
			}
			v, convErr := Convert(name, record[i])
			switch {
			case convErr != nil:
				out.Failures++
				logger.Warn().
					Int("row", rowNum).
					Str("field", name).
					Str("value", record[i]).
					Err(convErr).
					Msg("Conversion failed, keeping raw value")
			case v.IsRaw() && fields.KindOf(name) == fields.KindTimestamp:
				logger.Warn().
					Int("row", rowNum).
					Str("field", name).
					Msg("Blank date, keeping empty value")
			}
			row.Set(name, v)
		}
		out.Rows = append(out.Rows, row)
	}

	logger.Debug().
		Int("rows", len(out.Rows)).
		Int("failures", out.Failures).
		Strs("header", out.Header).
		Msg("Loaded file")

	return out, nil
}

// Convert turns one raw cell into a typed value according to the declared
// kind of field. On failure it returns the raw value together with a
// ConversionError. Blank cells of typed fields are kept raw without error.
func Convert(field, raw string) (typed.Value, error) {
	kind := fields.KindOf(field)

	switch kind {
	case fields.KindString, fields.KindUnknown:
		return typed.String(raw), nil
	}

	if strings.TrimSpace(raw) == "" {
		return typed.Raw(raw), nil
	}

	switch kind {
	case fields.KindTimestamp:
		p, err := dates.Parse(raw)
		if err != nil {
			return typed.Raw(raw), pkgerrors.NewConversionError(field, raw, kind.String(), err)
		}
		return typed.Time(p), nil
	case fields.KindMoney:
		d, err := money.Parse(raw)
		if err != nil {
			return typed.Raw(raw), pkgerrors.NewConversionError(field, raw, kind.String(), err)
		}
		return typed.Decimal(d), nil
	case fields.KindInteger:
		n, err := typed.ParseInt(raw)
		if err != nil {
			return typed.Raw(raw), pkgerrors.NewConversionError(field, raw, kind.String(), err)
		}
		return typed.Int(n), nil
	}

	return typed.String(raw), nil
}

func wrapCSV(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &pkgerrors.ParseError{
			Format:  "csv",
			File:    path,
			Line:    pe.Line,
			Column:  pe.Column,
			Message: pe.Err.Error(),
			Err:     err,
		}
	}
	return pkgerrors.WrapIO("read", path, err)
}
