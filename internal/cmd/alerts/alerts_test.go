package alerts_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dataunifier/internal/cmd/alerts"
	"github.com/agentstation/dataunifier/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "✗ 2 file(s) could not be read", alerts.Errorf("%d file(s) could not be read", 2).String())
	assert.Equal(t, "! partial", alerts.Warningf("partial").String())
	assert.Equal(t, "✓ done", alerts.Successf("done").String())
	assert.Equal(t, "?", alerts.Level("other").Icon())
}

func TestPrintLines(t *testing.T) {
	var buf bytes.Buffer
	p := alerts.NewPrinter(&buf, output.FormatTable, false)

	require.NoError(t, p.Print([]*alerts.Alert{
		alerts.Warningf("partial").WithDetails("a.csv", "b.csv"),
		alerts.Successf("done"),
	}))
	assert.Equal(t, "! partial\n   a.csv\n   b.csv\n✓ done\n", buf.String())
}

func TestPrintColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, alerts.NewPrinter(&buf, output.FormatWide, true).Print([]*alerts.Alert{alerts.Errorf("failed")}))
	assert.Equal(t, "\033[31m✗ failed\033[0m\n", buf.String())
}

func TestUseColor(t *testing.T) {
	assert.False(t, alerts.UseColor(&bytes.Buffer{}, false))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, alerts.UseColor(&bytes.Buffer{}, false))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := alerts.NewPrinter(&buf, output.FormatJSON, true)
	require.NoError(t, p.Print([]*alerts.Alert{alerts.Successf("done"), alerts.Warningf("partial").WithDetails("x")}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "success", got[0]["level"])
	assert.Equal(t, "done", got[0]["message"])
	assert.NotEmpty(t, got[0]["time"])
	assert.NotContains(t, got[0], "details")
	assert.Equal(t, []any{"x"}, got[1]["details"])
	assert.NotContains(t, buf.String(), "\033[")
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, alerts.NewPrinter(&buf, output.FormatYAML, false).Print([]*alerts.Alert{alerts.Successf("done")}))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "done", got[0]["message"])
}

func TestPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, alerts.NewPrinter(&buf, output.FormatJSON, false).Print(nil))
	assert.Empty(t, buf.String())
}
