package unify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
)

// HeaderStyle selects how header labels are written.
type HeaderStyle string

// Header styles.
const (
	// StyleCanonical writes target names as-is (reading_date).
	StyleCanonical HeaderStyle = "canonical"
	// StyleDisplay writes human labels (Reading date).
	StyleDisplay HeaderStyle = "display"
)

// ParseHeaderStyle parses a header style name. The empty string selects
// StyleCanonical.
func ParseHeaderStyle(s string) (HeaderStyle, error) {
	switch HeaderStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleCanonical:
		return StyleCanonical, nil
	case StyleDisplay:
		return StyleDisplay, nil
	default:
		return "", pkgerrors.NewConfigError("header-style", "unknown header style "+s, nil)
	}
}

// Label renders a column name in the given style. Display labels replace
// underscores with spaces and capitalize only the first word.
func Label(name string, style HeaderStyle) string {
	if style != StyleDisplay {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(strings.Trim(name, "_"), "_", " "))
	if len(words) == 0 {
		return name
	}
	// Casers keep state and are created per call.
	words[0] = cases.Title(language.Und).String(words[0])
	lower := cases.Lower(language.Und)
	for i := 1; i < len(words); i++ {
		words[i] = lower.String(words[i])
	}
	return strings.Join(words, " ")
}

// Labels renders every name in names.
func Labels(names []string, style HeaderStyle) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Label(n, style)
	}
	return out
}
