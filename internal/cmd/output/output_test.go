package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Path     string  `json:"path"`
	Rows     int     `json:"rows"`
	Failures int     `json:"conversion_failures,omitempty"`
	Files    []stats `json:"files"`
	hidden   string
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"", "table", "JSON", "yaml", "wide"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFromStruct(t *testing.T) {
	data := tableOf(&stats{Path: "a.csv", Rows: 2, hidden: "x"})
	require.NotNil(t, data)

	assert.Equal(t, []string{"Property", "Value"}, data.Headers)
	assert.Equal(t, [][]string{
		{"Path", "a.csv"},
		{"Rows", "2"},
		{"Conversion Failures", "0"},
	}, data.Rows)
}

func TestTableFromSlice(t *testing.T) {
	data := tableOf([]*stats{{Path: "a.csv", Rows: 1}, {Path: "b.csv", Rows: 2}})
	require.NotNil(t, data)

	assert.Equal(t, []string{"Path", "Rows", "Conversion Failures"}, data.Headers)
	assert.Equal(t, []string{"b.csv", "2", "0"}, data.Rows[1])
}

func TestPrint(t *testing.T) {
	table := &Data{Headers: []string{"Source"}, Rows: [][]string{{"amount"}}}
	raw := map[string]string{"source": "amount"}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatTable, table, raw))
	assert.Contains(t, buf.String(), "amount")
	assert.Contains(t, strings.ToLower(buf.String()), "source")

	buf.Reset()
	require.NoError(t, Print(&buf, FormatJSON, table, raw))
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, raw, decoded)

	buf.Reset()
	require.NoError(t, Print(&buf, FormatYAML, table, raw))
	assert.Equal(t, "source: amount\n", buf.String())
}

func TestPrintFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatTable, nil, []string{"a", "b"}))
	assert.JSONEq(t, `["a","b"]`, buf.String())

	assert.Nil(t, tableOf(42))
	assert.Nil(t, tableOf([]stats{}))
}

func TestPrintWideAlignment(t *testing.T) {
	table := &Data{
		Headers:         []string{"N", "Target"},
		Rows:            [][]string{{"1", "amount"}},
		ColumnAlignment: []Align{AlignRight, AlignDefault},
	}
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatWide, table, nil))
	assert.Contains(t, buf.String(), "amount")
}
