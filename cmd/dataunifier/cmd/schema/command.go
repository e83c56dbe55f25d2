// Package schema provides the command that prints the field routing table
// and the canonical header.
package schema

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dataunifier/internal/cmd/application"
	"github.com/agentstation/dataunifier/internal/cmd/output"
	"github.com/agentstation/dataunifier/pkg/fields"
	"github.com/agentstation/dataunifier/pkg/unify"
)

// Entry describes how one source column is unified.
type Entry struct {
	Source   string   `json:"source" yaml:"source"`
	Kind     string   `json:"kind" yaml:"kind"`
	Handlers []string `json:"handlers" yaml:"handlers"`
	Targets  []string `json:"targets" yaml:"targets"`
}

// Schema is the routing table together with the output header.
type Schema struct {
	Entries     []Entry  `json:"entries" yaml:"entries"`
	Header      []string `json:"header" yaml:"header"`
	Labels      []string `json:"labels" yaml:"labels"`
	Passthrough []string `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`
}

// NewCommand creates the schema command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "schema",
		GroupID: "core",
		Short:   "Show how source columns map onto the canonical schema",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.Engine()
			if err != nil {
				return err
			}
			s := Build(engine)
			format := output.Format(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, s.Table(format == output.FormatWide), s)
		},
	}
}

// Build describes the routing of engine.
func Build(engine *unify.Engine) Schema {
	reg := engine.Registry()
	s := Schema{
		Header:      engine.Header(),
		Labels:      engine.Labels(),
		Passthrough: engine.Passthrough(),
	}
	for _, e := range reg.Entries() {
		entry := Entry{Source: e.Source, Kind: fields.KindOf(e.Source).String()}
		for _, id := range e.Handlers {
			entry.Handlers = append(entry.Handlers, string(id))
			entry.Targets = append(entry.Targets, reg.Target(id, e.Source))
		}
		s.Entries = append(s.Entries, entry)
	}
	for _, col := range s.Passthrough {
		s.Entries = append(s.Entries, Entry{
			Source:   col,
			Kind:     fields.KindString.String(),
			Handlers: []string{string(unify.PassField)},
			Targets:  []string{col},
		})
	}
	return s
}

// Table renders the routing table. The wide table also lists the header
// position of every target.
func (s Schema) Table(wide bool) *output.Data {
	headers := []string{"Source", "Kind", "Handlers", "Targets"}
	if wide {
		headers = append(headers, "Columns")
	}

	position := make(map[string]string, len(s.Header))
	for i, h := range s.Header {
		position[h] = s.Labels[i]
	}

	data := &output.Data{Headers: headers}
	for _, e := range s.Entries {
		row := []string{e.Source, e.Kind, strings.Join(e.Handlers, ", "), strings.Join(e.Targets, ", ")}
		if wide {
			labels := make([]string, 0, len(e.Targets))
			for _, t := range e.Targets {
				labels = append(labels, position[t])
			}
			row = append(row, strings.Join(labels, ", "))
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}
