// Package accumulator collects unified records in file-then-row order
// together with the run counters.
package accumulator

// Record is one unified output row.
type Record struct {
	// SourceFile is the input file the row came from.
	SourceFile string
	// Row is the 1-based data row number within SourceFile.
	Row int
	// Values are aligned with the accumulator header.
	Values []string
}

// FileStats are the counters of one input file.
type FileStats struct {
	Path               string `json:"path" yaml:"path"`
	Rows               int    `json:"rows" yaml:"rows"`
	ConversionFailures int    `json:"conversion_failures" yaml:"conversion_failures"`
	HandlerFallbacks   int    `json:"handler_fallbacks" yaml:"handler_fallbacks"`
	Warnings           int    `json:"warnings" yaml:"warnings"`
	// Error is set when the file could not be read and was skipped.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Totals are the counters of a whole run.
type Totals struct {
	Files              int
	Rows               int
	ConversionFailures int
	HandlerFallbacks   int
	Warnings           int
	Skipped            int
}

// Result holds the header and every record of a run. The header row always
// comes first when the result is written.
type Result struct {
	header  []string
	labels  []string
	records []Record
	files   []FileStats
}

// New creates an empty result. labels are the header texts to write; when
// nil the header keys are written.
func New(header, labels []string) *Result {
	if labels == nil {
		labels = header
	}
	return &Result{
		header: append([]string(nil), header...),
		labels: append([]string(nil), labels...),
	}
}

// Header returns the column keys.
func (r *Result) Header() []string {
	return append([]string(nil), r.header...)
}

// Labels returns the header row as written.
func (r *Result) Labels() []string {
	return append([]string(nil), r.labels...)
}

// Add appends a record.
func (r *Result) Add(rec Record) {
	r.records = append(r.records, rec)
}

// AddFile records the counters of one processed file.
func (r *Result) AddFile(stats FileStats) {
	r.files = append(r.files, stats)
}

// Records returns the records in insertion order.
func (r *Result) Records() []Record {
	return r.records
}

// Files returns per-file counters in processing order.
func (r *Result) Files() []FileStats {
	return append([]FileStats(nil), r.files...)
}

// Len returns the number of records.
func (r *Result) Len() int {
	return len(r.records)
}

// Rows returns the header labels followed by every record's values.
func (r *Result) Rows() [][]string {
	out := make([][]string, 0, len(r.records)+1)
	out = append(out, r.Labels())
	for _, rec := range r.records {
		out = append(out, rec.Values)
	}
	return out
}

// Totals sums the per-file counters.
func (r *Result) Totals() Totals {
	t := Totals{Files: len(r.files)}
	for _, f := range r.files {
		t.Rows += f.Rows
		t.ConversionFailures += f.ConversionFailures
		t.HandlerFallbacks += f.HandlerFallbacks
		t.Warnings += f.Warnings
		if f.Error != "" {
			t.Skipped++
		}
	}
	return t
}
