package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dataunifier/pkg/dates"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"naive datetime", "2021-01-02T10:00:00", "2021-01-02T10:00:00"},
		{"naive with space", "2021-01-02 10:00:00", "2021-01-02T10:00:00"},
		{"date only", "2021-01-02", "2021-01-02T00:00:00"},
		{"utc designator", "2021-01-02T10:00:00Z", "2021-01-02T10:00:00+00:00"},
		{"offset", "2021-01-02T10:00:00+02:00", "2021-01-02T10:00:00+02:00"},
		{"negative offset", "2021-01-02T10:00:00-05:00", "2021-01-02T10:00:00-05:00"},
		{"microseconds", "2021-01-02T10:00:00.123456", "2021-01-02T10:00:00.123456"},
		{"milliseconds", "2021-01-02T10:00:00.5", "2021-01-02T10:00:00.500000"},
		{"compact", "20210102", "2021-01-02T00:00:00"},
		{"us slash", "1/2/2021", "2021-01-02T00:00:00"},
		{"padded us slash", "01/02/2021", "2021-01-02T00:00:00"},
		{"dotted month first", "01.02.2021", "2021-01-02T00:00:00"},
		{"unpadded iso", "2021-1-2", "2021-01-02T00:00:00"},
		{"month name without comma", "Jan 2 2021", "2021-01-02T00:00:00"},
		{"lower-case month", "jan 2, 2021", "2021-01-02T00:00:00"},
		{"ansic", "Sat Jan 2 10:00:00 2021", "2021-01-02T10:00:00"},
		{"readable short", "2 Jan 2021", "2021-01-02T00:00:00"},
		{"readable long", "January 2, 2021", "2021-01-02T00:00:00"},
		{"readable weekday", "Saturday, January 2, 2021", "2021-01-02T00:00:00"},
		{"rfc1123 offset", "Sat, 02 Jan 2021 10:00:00 +0100", "2021-01-02T10:00:00+01:00"},
		{"readable with time", "02 Jan 2021 10:30", "2021-01-02T10:30:00"},
		{"surrounding spaces", "  2021-01-02  ", "2021-01-02T00:00:00"},
		{"epoch seconds", "1609581600", "2021-01-02T10:00:00+00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := dates.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dates.ISO(p))
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2021-13-45", "yesterday"} {
		t.Run(in, func(t *testing.T) {
			_, err := dates.Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestParseZoned(t *testing.T) {
	p, err := dates.Parse("2021-01-02 10:00:00")
	require.NoError(t, err)
	assert.False(t, p.Zoned)
	assert.Equal(t, 10, p.Time.Hour())

	p, err = dates.Parse("2021-01-02T10:00:00+05:30")
	require.NoError(t, err)
	assert.True(t, p.Zoned)
	assert.Equal(t, "2021-01-02T04:30:00Z", p.Time.UTC().Format(time.RFC3339))
}
