// Package report summarizes a unification run.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier/pkg/accumulator"
	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/errors"
)

// Format is a report serialization format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. The empty string selects YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", errors.NewConfigError("report-format", "unsupported report format "+s, nil)
	}
}

// FormatForPath picks the format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Report is the summary of one run.
type Report struct {
	RunID              string                  `json:"run_id" yaml:"run_id"`
	DataPath           string                  `json:"data_path" yaml:"data_path"`
	OutputPath         string                  `json:"output_path" yaml:"output_path"`
	StartedAt          utc.Time                `json:"started_at" yaml:"started_at"`
	FinishedAt         utc.Time                `json:"finished_at" yaml:"finished_at"`
	Duration           string                  `json:"duration" yaml:"duration"`
	Files              int                     `json:"files" yaml:"files"`
	Rows               int                     `json:"rows" yaml:"rows"`
	ConversionFailures int                     `json:"conversion_failures" yaml:"conversion_failures"`
	HandlerFallbacks   int                     `json:"handler_fallbacks" yaml:"handler_fallbacks"`
	Warnings           int                     `json:"warnings" yaml:"warnings"`
	SkippedFiles       int                     `json:"skipped_files" yaml:"skipped_files"`
	Sinks              []string                `json:"sinks" yaml:"sinks"`
	PerFile            []accumulator.FileStats `json:"per_file" yaml:"per_file"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// New starts a report for a run beginning now.
func New(runID, dataPath, outputPath string) *Report {
	if runID == "" {
		runID = NewRunID()
	}
	return &Report{
		RunID:      runID,
		DataPath:   dataPath,
		OutputPath: outputPath,
		StartedAt:  utc.Now(),
	}
}

// Finish copies the counters of result and stamps the finish time.
func (r *Report) Finish(result *accumulator.Result, sinks []string) {
	r.FinishedAt = utc.Now()
	r.Duration = r.FinishedAt.Time.Sub(r.StartedAt.Time).Round(time.Millisecond).String()
	r.Sinks = sinks
	if result == nil {
		return
	}
	totals := result.Totals()
	r.Files = totals.Files
	r.Rows = totals.Rows
	r.ConversionFailures = totals.ConversionFailures
	r.HandlerFallbacks = totals.HandlerFallbacks
	r.Warnings = totals.Warnings
	r.SkippedFiles = totals.Skipped
	r.PerFile = result.Files()
}

// Marshal serializes the report.
func (r *Report) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	default:
		return yaml.Marshal(r)
	}
}

// WriteFile writes the report to path, creating parent directories.
func (r *Report) WriteFile(path string, format Format) error {
	data, err := r.Marshal(format)
	if err != nil {
		return errors.WrapParse(string(format), path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Log writes the summary as one info event.
func (r *Report) Log(logger *zerolog.Logger) {
	logger.Info().
		Str("run_id", r.RunID).
		Str("output", r.OutputPath).
		Int("files", r.Files).
		Int("rows", r.Rows).
		Int("conversion_failures", r.ConversionFailures).
		Int("handler_fallbacks", r.HandlerFallbacks).
		Int("warnings", r.Warnings).
		Int("skipped_files", r.SkippedFiles).
		Str("duration", r.Duration).
		Msg("Run finished")
}
