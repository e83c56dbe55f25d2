package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records JSON log entries in memory.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger returns a trace-level TestLogger. The zerolog global level is
// lowered for the duration of the test.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Lines returns one string per entry.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.Buffer.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// ContainsAll reports whether every substring occurs in the output.
func (tl *TestLogger) ContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(tl.Buffer.String(), s) {
			return false
		}
	}
	return true
}

// CountLevel returns the number of entries logged at level.
func (tl *TestLogger) CountLevel(level zerolog.Level) int {
	marker := `"level":"` + level.String() + `"`
	n := 0
	for _, line := range tl.Lines() {
		if strings.Contains(line, marker) {
			n++
		}
	}
	return n
}

// AssertContains fails t unless substr occurs in the output.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.Buffer.String(), substr) {
		t.Errorf("log output does not contain %q\n%s", substr, tl.Buffer.String())
	}
}
