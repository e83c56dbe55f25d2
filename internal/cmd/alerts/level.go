package alerts

// Level is the severity of a notice.
type Level string

// Notice levels.
const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelSuccess Level = "success"
)

type style struct {
	icon  string
	color string
}

var styles = map[Level]style{
	LevelError:   {"✗", "\033[31m"},
	LevelWarning: {"!", "\033[33m"},
	LevelSuccess: {"✓", "\033[32m"},
}

const resetColor = "\033[0m"

// Icon returns the symbol printed in front of the message.
func (l Level) Icon() string {
	if s, ok := styles[l]; ok {
		return s.icon
	}
	return "?"
}

// Color returns the ANSI color sequence of the level, or "" for an unknown
// level.
func (l Level) Color() string {
	return styles[l].color
}
