// Package typed holds the typed cell values produced by the loader and
// consumed by the reconciliation handlers.
package typed

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/dataunifier/pkg/dates"
	"github.com/agentstation/dataunifier/pkg/money"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value variants. KindRaw holds a cell whose declared conversion failed.
const (
	KindString Kind = iota
	KindTime
	KindDecimal
	KindInt
	KindRaw
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindDecimal:
		return "decimal"
	case KindInt:
		return "int"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Value is a single typed cell. The zero value is an empty string.
type Value struct {
	kind Kind
	str  string
	time dates.Parsed
	dec  decimal.Decimal
	i    int64
}

// String wraps a plain string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Raw wraps the original text of a cell that failed conversion.
func Raw(s string) Value { return Value{kind: KindRaw, str: s} }

// Time wraps a parsed date-time.
func Time(p dates.Parsed) Value { return Value{kind: KindTime, time: p} }

// Decimal wraps an exact decimal.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsRaw reports whether v is an unconverted fallback.
func (v Value) IsRaw() bool { return v.kind == KindRaw }

// Text returns the string payload for String and Raw values.
func (v Value) Text() (string, bool) {
	if v.kind == KindString || v.kind == KindRaw {
		return v.str, true
	}
	return "", false
}

// AsTime returns the date-time payload.
func (v Value) AsTime() (dates.Parsed, bool) {
	return v.time, v.kind == KindTime
}

// AsDecimal returns the decimal payload. Int values widen to decimals.
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	switch v.kind {
	case KindDecimal:
		return v.dec, true
	case KindInt:
		return decimal.NewFromInt(v.i), true
	default:
		return decimal.Decimal{}, false
	}
}

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// String renders v for CSV output. Times render as ISO-8601, decimals keep
// their scale, raw values are returned verbatim.
func (v Value) String() string {
	switch v.kind {
	case KindTime:
		return dates.ISO(v.time)
	case KindDecimal:
		return money.Format(v.dec)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return v.str
	}
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindTime:
		return v.time.Zoned == o.time.Zoned && v.time.Time.Equal(o.time.Time)
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindInt:
		return v.i == o.i
	default:
		return v.str == o.str
	}
}

// ParseInt reads a base-10 integer, ignoring surrounding whitespace.
func ParseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
