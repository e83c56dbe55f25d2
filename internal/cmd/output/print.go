package output

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"
)

// Print writes a command result. JSON and YAML serialize raw. Table formats
// render table, or a table laid out from raw when table is nil; values that
// cannot be laid out as a table are printed as JSON.
func Print(w io.Writer, format Format, table *Data, raw any) error {
	switch format {
	case FormatJSON:
		return printJSON(w, raw)
	case FormatYAML:
		out, err := yaml.MarshalWithOptions(raw, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	if table == nil {
		table = tableOf(raw)
	}
	if table == nil {
		return printJSON(w, raw)
	}
	return table.render(w)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
