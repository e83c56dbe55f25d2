package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/dataunifier/internal/cmd/output"
)

// Printer writes notices in one of the command output formats. JSON and YAML
// print all notices as a single list; every other format prints one line per
// notice.
type Printer struct {
	w      io.Writer
	format output.Format
	color  bool
}

// NewPrinter creates a Printer. color enables ANSI colors for line output;
// see UseColor.
func NewPrinter(w io.Writer, format output.Format, color bool) *Printer {
	return &Printer{w: w, format: format, color: color}
}

// UseColor reports whether line output to w should be colored: w must be a
// terminal and neither --no-color nor NO_COLOR may be set.
func UseColor(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

type record struct {
	Level   Level    `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Time    string   `json:"time" yaml:"time"`
}

// Print writes notices. Nothing is written for an empty list.
func (p *Printer) Print(notices []*Alert) error {
	if len(notices) == 0 {
		return nil
	}

	switch p.format {
	case output.FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(notices))
	case output.FormatYAML:
		data, err := yaml.Marshal(records(notices))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "---\n%s", data)
		return err
	}

	for _, a := range notices {
		line := a.String()
		if p.color && a.Level.Color() != "" {
			line = a.Level.Color() + line + resetColor
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
		for _, d := range a.Details {
			if _, err := fmt.Fprintf(p.w, "   %s\n", d); err != nil {
				return err
			}
		}
	}
	return nil
}

func records(notices []*Alert) []record {
	out := make([]record, 0, len(notices))
	for _, a := range notices {
		out = append(out, record{
			Level:   a.Level,
			Message: a.Message,
			Details: a.Details,
			Time:    a.At.Time.Format(time.RFC3339),
		})
	}
	return out
}
