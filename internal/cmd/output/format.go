// Package output renders command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/dataunifier/pkg/errors"
)

// Format is a command output format.
type Format string

// Output formats. Wide is a table that also lists per-item detail.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatWide  Format = "wide"
)

// ParseFormat validates s case-insensitively. The empty string is allowed and
// means "detect".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatTable, FormatJSON, FormatYAML, FormatWide:
		return f, nil
	}
	return "", errors.NewConfigError("format",
		fmt.Sprintf("%q is not one of table, json, yaml, wide", s), nil)
}

// DetectFormat returns explicit when set, otherwise table for a terminal
// and JSON when stdout is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}
