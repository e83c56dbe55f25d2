// Package dates parses the date and time representations found in ledger
// exports and renders them as ISO-8601.
//
// Free-form parsing is delegated to dateparse. Inputs that carry a zone or
// offset produce zoned values; all others are naive wall-clock times and are
// rendered without an offset. Ambiguous numeric dates are read month first.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parsed is a successfully parsed date-time.
type Parsed struct {
	Time time.Time
	// Zoned is true when the input carried an explicit zone or offset.
	Zoned bool
}

var (
	// epochPattern matches bare Unix timestamps in seconds. Eight digit
	// values are left to dateparse, which reads them as YYYYMMDD.
	epochPattern = regexp.MustCompile(`^\d{9,11}$`)

	// weekdayPrefix matches a spelled-out weekday followed by a comma, as in
	// "Saturday, January 2, 2021".
	weekdayPrefix = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday),\s*`)

	// offsetZone is any location with a non-zero offset. Naive inputs parse
	// to different instants in UTC and in offsetZone; zoned inputs do not.
	offsetZone = time.FixedZone("", 5*60*60+30*60)
)

// Parse interprets s as a calendar date-time.
func Parse(s string) (Parsed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Parsed{}, fmt.Errorf("empty date value")
	}

	if epochPattern.MatchString(s) {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return Parsed{Time: time.Unix(secs, 0).UTC(), Zoned: true}, nil
		}
	}

	s = weekdayPrefix.ReplaceAllString(s, "")

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Parsed{}, fmt.Errorf("unrecognized date format %q: %w", s, err)
	}
	shifted, err := dateparse.ParseIn(s, offsetZone)
	zoned := err == nil && t.Equal(shifted)

	return Parsed{Time: t, Zoned: zoned}, nil
}

// ISO renders p as ISO-8601: YYYY-MM-DDTHH:MM:SS, then .ffffff when the
// microsecond part is non-zero, then ±HH:MM for zoned values.
func ISO(p Parsed) string {
	var b strings.Builder
	b.WriteString(p.Time.Format("2006-01-02T15:04:05"))
	if micros := p.Time.Nanosecond() / 1000; micros != 0 {
		fmt.Fprintf(&b, ".%06d", micros)
	}
	if p.Zoned {
		b.WriteString(p.Time.Format("-07:00"))
	}
	return b.String()
}
