// Package alerts prints the short notices that close a run: files that were
// skipped, values that stayed unconverted, or a success line.
package alerts

import (
	"fmt"

	"github.com/agentstation/utc"
)

// Alert is one notice. Details are printed indented under the message.
type Alert struct {
	Level   Level
	Message string
	Details []string
	At      utc.Time
}

func newAlert(level Level, format string, args ...any) *Alert {
	return &Alert{Level: level, Message: fmt.Sprintf(format, args...), At: utc.Now()}
}

// Errorf creates an error notice.
func Errorf(format string, args ...any) *Alert { return newAlert(LevelError, format, args...) }

// Warningf creates a warning notice.
func Warningf(format string, args ...any) *Alert { return newAlert(LevelWarning, format, args...) }

// Successf creates a success notice.
func Successf(format string, args ...any) *Alert { return newAlert(LevelSuccess, format, args...) }

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String renders the notice on one line, prefixed by the level icon.
func (a *Alert) String() string {
	return a.Level.Icon() + " " + a.Message
}
